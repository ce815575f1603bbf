package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"storefront-client/internal/form"
	"storefront-client/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ProductCreator creates a single product.
type ProductCreator interface {
	CreateProduct(ctx context.Context, input model.ProductInput) (*model.Product, error)
}

// Rejection is a line that was never sent because it failed validation.
type Rejection struct {
	Line   int
	Name   string
	Errors form.Errors
}

// Failure is a valid line the API refused or could not be reached for.
type Failure struct {
	Line int
	Name string
	Err  error
}

// Report summarises an import.
type Report struct {
	Created  []model.Product
	Rejected []Rejection
	Failed   []Failure
}

// Total returns the number of records processed.
func (r *Report) Total() int {
	return len(r.Created) + len(r.Rejected) + len(r.Failed)
}

// Importer validates records and creates the valid ones concurrently.
type Importer struct {
	creator ProductCreator
	workers int
	logger  zerolog.Logger
}

// NewImporter creates an importer running at most workers creates at once.
func NewImporter(creator ProductCreator, workers int, logger zerolog.Logger) *Importer {
	if workers < 1 {
		workers = 1
	}
	return &Importer{
		creator: creator,
		workers: workers,
		logger:  logger.With().Str("component", "catalog-importer").Logger(),
	}
}

// Import validates every record and creates the valid ones. Individual
// create failures are reported, not returned; the returned error is only
// set when ctx ends before all records were sent.
func (im *Importer) Import(ctx context.Context, records []Record) (*Report, error) {
	report := &Report{}
	var mu sync.Mutex

	valid := make([]Record, 0, len(records))
	seen := make(map[string]int, len(records))
	for _, rec := range records {
		if rejection, ok := im.reject(rec, seen); ok {
			report.Rejected = append(report.Rejected, rejection)
			continue
		}
		valid = append(valid, rec)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.workers)

	for _, rec := range valid {
		if gctx.Err() != nil {
			break
		}

		rec := rec
		g.Go(func() error {
			product, err := im.creator.CreateProduct(gctx, rec.Input)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				im.logger.Warn().Err(err).Int("line", rec.Line).Str("name", rec.Input.Name).Msg("failed to create product")
				report.Failed = append(report.Failed, Failure{Line: rec.Line, Name: rec.Input.Name, Err: err})
				return nil
			}

			report.Created = append(report.Created, *product)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}

	sort.Slice(report.Failed, func(i, j int) bool { return report.Failed[i].Line < report.Failed[j].Line })

	im.logger.Info().
		Int("created", len(report.Created)).
		Int("rejected", len(report.Rejected)).
		Int("failed", len(report.Failed)).
		Msg("catalog import finished")

	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("catalog import interrupted: %w", err)
	}

	return report, nil
}

// reject validates a record. Names must be unique within one import.
func (im *Importer) reject(rec Record, seen map[string]int) (Rejection, bool) {
	if rec.Err != nil {
		return Rejection{Line: rec.Line, Errors: form.Errors{"line": rec.Err.Error()}}, true
	}

	if errs := form.ValidateProductInput(rec.Input); len(errs) > 0 {
		return Rejection{Line: rec.Line, Name: rec.Input.Name, Errors: errs}, true
	}

	key := strings.ToLower(strings.TrimSpace(rec.Input.Name))
	if first, ok := seen[key]; ok {
		return Rejection{
			Line:   rec.Line,
			Name:   rec.Input.Name,
			Errors: form.Errors{form.FieldName: fmt.Sprintf("Duplicate of line %d", first)},
		}, true
	}
	seen[key] = rec.Line

	return Rejection{}, false
}
