package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"storefront-client/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUser struct {
	model.User
	password string
	token    string
}

type fakeLine struct {
	ProductID string
	Quantity  int
}

// fakeStorefront is an in-memory storefront API.
type fakeStorefront struct {
	mu       sync.Mutex
	users    []fakeUser
	products []model.Product
	carts    map[string][]fakeLine
	orders   []map[string]any
	nextID   int
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newFakeStorefront() *fakeStorefront {
	return &fakeStorefront{
		users: []fakeUser{
			{User: model.User{ID: "u1", Name: "Asha", Email: "asha@example.com", Role: model.RoleCustomer}, password: "secret1", token: "tok-customer"},
			{User: model.User{ID: "u2", Name: "Ravi", Email: "ravi@example.com", Role: model.RoleAdmin}, password: "secret1", token: "tok-admin"},
		},
		products: []model.Product{
			{ID: "p1", Name: "Desk Lamp", Description: "Warm LED light", Price: mustDecimal("100")},
			{ID: "p2", Name: "Mug", Description: "Ceramic mug", Price: mustDecimal("50")},
		},
		carts: map[string][]fakeLine{},
	}
}

func reply(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (f *fakeStorefront) caller(r *http.Request) *fakeUser {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	for i := range f.users {
		if token != "" && f.users[i].token == token {
			return &f.users[i]
		}
	}
	return nil
}

func (f *fakeStorefront) product(id string) *model.Product {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i]
		}
	}
	return nil
}

func (f *fakeStorefront) cartBody(userID string) map[string]any {
	items := []map[string]any{}
	for _, line := range f.carts[userID] {
		items = append(items, map[string]any{"product": f.product(line.ProductID), "quantity": line.Quantity})
	}
	return map[string]any{"success": true, "data": map[string]any{"_id": "cart-" + userID, "items": items}}
}

func (f *fakeStorefront) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var body map[string]any
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&body)
	}

	if r.URL.Path == "/api/auth/login" {
		for _, u := range f.users {
			if u.Email == body["email"] && u.password == body["password"] {
				reply(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"user": u.User, "token": u.token}})
				return
			}
		}
		reply(w, http.StatusUnauthorized, map[string]any{"message": "Invalid email or password"})
		return
	}

	if r.URL.Path == "/api/products" && r.Method == http.MethodGet {
		reply(w, http.StatusOK, map[string]any{"products": f.products})
		return
	}

	user := f.caller(r)
	if user == nil {
		reply(w, http.StatusUnauthorized, map[string]any{"message": "Not authorized, token failed"})
		return
	}

	switch {
	case r.URL.Path == "/api/products" && r.Method == http.MethodPost:
		if user.Role != model.RoleAdmin {
			reply(w, http.StatusForbidden, map[string]any{"message": "Not authorized as admin"})
			return
		}
		f.nextID++
		p := model.Product{
			ID:          fmt.Sprintf("new%d", f.nextID),
			Name:        fmt.Sprint(body["name"]),
			Description: fmt.Sprint(body["description"]),
			Price:       mustDecimal(fmt.Sprint(body["price"])),
			Image:       fmt.Sprint(body["image"]),
		}
		f.products = append(f.products, p)
		reply(w, http.StatusCreated, p)

	case r.URL.Path == "/api/cart":
		reply(w, http.StatusOK, f.cartBody(user.ID))

	case r.URL.Path == "/api/cart/add":
		id := fmt.Sprint(body["productId"])
		delta := int(body["quantity"].(float64))
		lines := f.carts[user.ID]
		found := false
		for i := range lines {
			if lines[i].ProductID == id {
				lines[i].Quantity += delta
				found = true
			}
		}
		if !found {
			lines = append(lines, fakeLine{ProductID: id, Quantity: delta})
		}
		f.carts[user.ID] = lines
		reply(w, http.StatusOK, f.cartBody(user.ID))

	case r.URL.Path == "/api/cart/remove":
		id := fmt.Sprint(body["productId"])
		kept := []fakeLine{}
		for _, line := range f.carts[user.ID] {
			if line.ProductID != id {
				kept = append(kept, line)
			}
		}
		f.carts[user.ID] = kept
		reply(w, http.StatusOK, f.cartBody(user.ID))

	case r.URL.Path == "/api/orders/checkout":
		lines := f.carts[user.ID]
		if len(lines) == 0 {
			reply(w, http.StatusBadRequest, map[string]any{"message": "Cart is empty"})
			return
		}
		items := []map[string]any{}
		for _, line := range lines {
			p := f.product(line.ProductID)
			items = append(items, map[string]any{"product": p, "quantity": line.Quantity, "priceAtPurchase": p.Price})
		}
		f.nextID++
		order := map[string]any{
			"_id":         fmt.Sprintf("65a1b2c3d4e5f60a9f8e7d%02d", f.nextID),
			"user":        user.ID,
			"items":       items,
			"paymentMode": body["paymentMode"],
			"createdAt":   time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		}
		f.orders = append(f.orders, order)
		f.carts[user.ID] = nil
		reply(w, http.StatusCreated, map[string]any{"success": true, "order": order})

	case r.URL.Path == "/api/orders":
		mine := []map[string]any{}
		for _, o := range f.orders {
			if o["user"] == user.ID {
				mine = append(mine, o)
			}
		}
		reply(w, http.StatusOK, map[string]any{"data": mine})

	case r.URL.Path == "/api/orders/all":
		reply(w, http.StatusOK, f.orders)

	default:
		reply(w, http.StatusNotFound, map[string]any{"message": "Not found"})
	}
}

// setupCLI points the CLI at a fake storefront and a temp session file.
func setupCLI(t *testing.T) (*fakeStorefront, string) {
	t.Helper()
	fake := newFakeStorefront()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	sessionFile := filepath.Join(t.TempDir(), "session.json")
	t.Setenv("API_BASE_URL", server.URL)
	t.Setenv("API_ON_UNAUTHORIZED", "clear")
	t.Setenv("SESSION_BACKEND", "file")
	t.Setenv("SESSION_FILE", sessionFile)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("S3_ENABLED", "false")
	t.Setenv("METRICS_PUSH_URL", "")

	return fake, sessionFile
}

// cli runs one CLI invocation and returns its output.
func cli(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), args, &out)
	return out.String(), err
}

func TestCLI_ShoppingFlow(t *testing.T) {
	_, sessionFile := setupCLI(t)

	out, err := cli(t, "login", "-email", "asha@example.com", "-password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome back, Asha!")
	assert.FileExists(t, sessionFile)

	out, err = cli(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Asha <asha@example.com> (customer)")

	_, err = cli(t, "cart-add", "p1", "-qty", "2")
	require.NoError(t, err)
	out, err = cli(t, "cart-add", "p2")
	require.NoError(t, err)
	assert.Contains(t, out, "$250.00")

	_, err = cli(t, "cart-update", "p2", "-1")
	require.Error(t, err)
	assert.Equal(t, model.ErrInvalidQuantity, err)

	out, err = cli(t, "checkout", "-name", "Asha Rao", "-email", "asha@example.com", "-phone", "123",
		"-address", "42 MG Road, Indiranagar", "-city", "Bengaluru", "-zip", "560038")
	require.Error(t, err)
	assert.Contains(t, out, "phone: Phone number must be at least 10 digits")

	out, err = cli(t, "checkout", "-name", "Asha Rao", "-email", "asha@example.com", "-phone", "+1 (555) 123-4567",
		"-address", "42 MG Road, Indiranagar", "-city", "Bengaluru", "-zip", "560038", "-payment", "UPI", "-upi", "asha@okbank")
	require.NoError(t, err)
	assert.Contains(t, out, "Order placed successfully!")
	assert.Contains(t, out, "Order #9F8E7D01")
	assert.Contains(t, out, "$250.00")

	out, err = cli(t, "cart")
	require.NoError(t, err)
	assert.Contains(t, out, "Your cart is empty.")

	out, err = cli(t, "orders")
	require.NoError(t, err)
	assert.Contains(t, out, "#9F8E7D01")
	assert.Contains(t, out, "UPI")

	out, err = cli(t, "receipt", "65a1b2c3d4e5f60a9f8e7d01")
	require.NoError(t, err)
	assert.Contains(t, out, "Desk Lamp")
	assert.Contains(t, out, "TOTAL")

	_, err = cli(t, "logout")
	require.NoError(t, err)
	assert.NoFileExists(t, sessionFile)

	out, err = cli(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")
}

func TestCLI_LoginFailureKeepsNoSession(t *testing.T) {
	_, sessionFile := setupCLI(t)

	_, err := cli(t, "login", "-email", "asha@example.com", "-password", "wrong-pass")

	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", err.Error())
	assert.NoFileExists(t, sessionFile)
}

func TestCLI_InvalidLoginFormNeverCallsAPI(t *testing.T) {
	setupCLI(t)

	out, err := cli(t, "login", "-email", "asha", "-password", "123")

	require.Error(t, err)
	assert.Contains(t, out, "email: Invalid email address")
	assert.Contains(t, out, "password: Password must be at least 6 characters")
}

func TestCLI_UnauthorizedClearsSession(t *testing.T) {
	fake, sessionFile := setupCLI(t)

	_, err := cli(t, "login", "-email", "asha@example.com", "-password", "secret1")
	require.NoError(t, err)

	// Server-side revocation
	fake.mu.Lock()
	fake.users[0].token = "rotated"
	fake.mu.Unlock()

	_, err = cli(t, "cart")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run: storefront login")
	assert.NoFileExists(t, sessionFile)

	_, err = cli(t, "cart")
	assert.Equal(t, model.ErrNotAuthenticated, err)
}

func TestCLI_UnauthorizedKeepPolicy(t *testing.T) {
	fake, sessionFile := setupCLI(t)
	t.Setenv("API_ON_UNAUTHORIZED", "keep")

	_, err := cli(t, "login", "-email", "asha@example.com", "-password", "secret1")
	require.NoError(t, err)

	fake.mu.Lock()
	fake.users[0].token = "rotated"
	fake.mu.Unlock()

	_, err = cli(t, "cart")
	require.Error(t, err)
	assert.FileExists(t, sessionFile)
}

func TestCLI_Guards(t *testing.T) {
	setupCLI(t)

	_, err := cli(t, "cart")
	assert.Equal(t, model.ErrNotAuthenticated, err)

	_, err = cli(t, "login", "-email", "asha@example.com", "-password", "secret1")
	require.NoError(t, err)
	_, err = cli(t, "orders-all")
	assert.Equal(t, model.ErrAdminOnly, err)

	_, err = cli(t, "login", "-email", "ravi@example.com", "-password", "secret1")
	require.NoError(t, err)
	_, err = cli(t, "cart")
	assert.Equal(t, model.ErrAdminRestricted, err)
}

func TestCLI_ProductsSearch(t *testing.T) {
	setupCLI(t)

	out, err := cli(t, "products", "-q", "MUG")

	require.NoError(t, err)
	assert.Contains(t, out, "Mug")
	assert.NotContains(t, out, "Desk Lamp")
}

func TestCLI_ImportCatalog(t *testing.T) {
	fake, _ := setupCLI(t)

	_, err := cli(t, "login", "-email", "ravi@example.com", "-password", "secret1")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalog.jsonl.gz")
	file, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(file)
	fmt.Fprintln(gz, `{"name":"Oak Desk","description":"Solid wood writing desk","price":300,"image":"https://img.example.com/desk.png"}`)
	fmt.Fprintln(gz, `{"name":"TV","description":"Too short a name","price":10,"image":"https://img.example.com/tv.png"}`)
	require.NoError(t, gz.Close())
	require.NoError(t, file.Close())

	out, err := cli(t, "import-catalog", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 of 2 products (1 rejected, 0 failed)")
	assert.Contains(t, out, "Product name must be at least 3 characters")

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Len(t, fake.products, 3)
}

func TestCLI_UnknownCommand(t *testing.T) {
	setupCLI(t)

	out, err := cli(t, "teleport")

	require.Error(t, err)
	assert.Contains(t, out, "Usage: storefront <command>")
}
