package api

import (
	"encoding/json"
	"testing"

	"storefront-client/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		keys        []string
		expectedIDs []string
		expectError bool
	}{
		{name: "Bare array", payload: `[{"_id":"o1"},{"_id":"o2"}]`, keys: []string{"data", "orders"}, expectedIDs: []string{"o1", "o2"}},
		{name: "Wrapped in data", payload: `{"success":true,"data":[{"_id":"o1"}]}`, keys: []string{"data", "orders"}, expectedIDs: []string{"o1"}},
		{name: "Wrapped in orders", payload: `{"count":1,"orders":[{"_id":"o3"}]}`, keys: []string{"data", "orders"}, expectedIDs: []string{"o3"}},
		{name: "First key wins", payload: `{"data":[{"_id":"a"}],"orders":[{"_id":"b"}]}`, keys: []string{"data", "orders"}, expectedIDs: []string{"a"}},
		{name: "Null data falls through", payload: `{"data":null,"orders":[{"_id":"b"}]}`, keys: []string{"data", "orders"}, expectedIDs: []string{"b"}},
		{name: "Unknown shape is empty", payload: `{"message":"ok"}`, keys: []string{"data", "orders"}, expectedIDs: []string{}},
		{name: "Null body is empty", payload: `null`, keys: []string{"data"}, expectedIDs: []string{}},
		{name: "Scalar body is an error", payload: `"nope"`, keys: []string{"data"}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders, err := decodeList[model.Order](json.RawMessage(tt.payload), tt.keys...)

			if tt.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			ids := make([]string, 0, len(orders))
			for _, o := range orders {
				ids = append(ids, o.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}

func TestDecodeObject(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		expectedName string
		expectError  bool
	}{
		{name: "Wrapped in product", payload: `{"product":{"_id":"p1","name":"Lamp"}}`, expectedName: "Lamp"},
		{name: "Wrapped in data", payload: `{"success":true,"data":{"_id":"p1","name":"Desk"}}`, expectedName: "Desk"},
		{name: "Wrapped in result", payload: `{"result":{"_id":"p1","name":"Chair"}}`, expectedName: "Chair"},
		{name: "Bare object", payload: `{"_id":"p1","name":"Rug","price":"10.00"}`, expectedName: "Rug"},
		{name: "Empty body", payload: ``, expectError: true},
		{name: "Null body", payload: `null`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := decodeObject[model.Product](json.RawMessage(tt.payload), "product", "data", "result")

			if tt.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedName, product.Name)
		})
	}
}

func TestDecodeAuth(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		expectError bool
	}{
		{name: "Login shape", payload: `{"success":true,"data":{"user":{"_id":"u1","name":"Asha","role":"customer"},"token":"t1"}}`},
		{name: "Register shape", payload: `{"user":{"_id":"u1","name":"Asha","role":"customer"},"token":"t1"}`},
		{name: "Missing token", payload: `{"user":{"_id":"u1"}}`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := decodeAuth(json.RawMessage(tt.payload))

			if tt.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "t1", result.Token)
			require.NotNil(t, result.User)
			assert.Equal(t, "Asha", result.User.Name)
		})
	}
}

func TestDecodeCart(t *testing.T) {
	payload := `{"success":true,"data":{"_id":"c1","items":[
		{"product":{"_id":"p1","price":100},"quantity":2},
		{"product":{"_id":"p2","price":50},"quantity":1}
	]}}`

	cart, err := decodeObject[model.Cart](json.RawMessage(payload), "data", "cart")
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, "250", cart.Total().String())
}
