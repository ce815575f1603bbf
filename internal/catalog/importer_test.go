package catalog

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"storefront-client/internal/form"
	"storefront-client/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductCreator is a mock implementation of ProductCreator.
type MockProductCreator struct {
	mock.Mock
}

func (m *MockProductCreator) CreateProduct(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func input(name string, price int64) model.ProductInput {
	return model.ProductInput{
		Name:        name,
		Description: "A perfectly ordinary " + name,
		Price:       decimal.NewFromInt(price),
		Image:       "https://img.example.com/item.png",
	}
}

func TestImporter_Import(t *testing.T) {
	ctx := context.Background()
	creator := new(MockProductCreator)

	records := []Record{
		{Line: 1, Input: input("Desk Lamp", 40)},
		{Line: 2, Input: input("Oak Desk", 0)},
		{Line: 3, Err: errors.New("line 3: invalid product")},
		{Line: 4, Input: input("Mug", 8)},
		{Line: 5, Input: input("desk lamp", 45)},
		{Line: 6, Input: input("Chair", 120)},
	}

	creator.On("CreateProduct", mock.Anything, records[0].Input).Return(&model.Product{ID: "p1", Name: "Desk Lamp"}, nil)
	creator.On("CreateProduct", mock.Anything, records[3].Input).Return(nil, errors.New("Not authorized as admin"))
	creator.On("CreateProduct", mock.Anything, records[5].Input).Return(&model.Product{ID: "p6", Name: "Chair"}, nil)

	report, err := NewImporter(creator, 2, zerolog.Nop()).Import(ctx, records)

	require.NoError(t, err)
	assert.Equal(t, 6, report.Total())
	assert.Len(t, report.Created, 2)

	require.Len(t, report.Rejected, 3)
	assert.Equal(t, 2, report.Rejected[0].Line)
	assert.Equal(t, "Price must be greater than 0", report.Rejected[0].Errors[form.FieldPrice])
	assert.Equal(t, 3, report.Rejected[1].Line)
	assert.Equal(t, 5, report.Rejected[2].Line)
	assert.Equal(t, "Duplicate of line 1", report.Rejected[2].Errors[form.FieldName])

	require.Len(t, report.Failed, 1)
	assert.Equal(t, 4, report.Failed[0].Line)
	assert.Equal(t, "Mug", report.Failed[0].Name)

	creator.AssertNumberOfCalls(t, "CreateProduct", 3)
}

func TestImporter_RespectsWorkerLimit(t *testing.T) {
	creator := new(MockProductCreator)

	var running, peak atomic.Int32
	creator.On("CreateProduct", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
		}).
		Return(&model.Product{ID: "p"}, nil)

	records := make([]Record, 0, 10)
	for i, name := range []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf", "Hotel", "India", "Juliet"} {
		records = append(records, Record{Line: i + 1, Input: input(name, 10)})
	}

	report, err := NewImporter(creator, 3, zerolog.Nop()).Import(context.Background(), records)

	require.NoError(t, err)
	assert.Len(t, report.Created, 10)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestImporter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	creator := new(MockProductCreator)
	report, err := NewImporter(creator, 1, zerolog.Nop()).Import(ctx, []Record{{Line: 1, Input: input("Desk Lamp", 40)}})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Created)
	creator.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}
