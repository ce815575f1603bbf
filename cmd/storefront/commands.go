package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"storefront-client/internal/api"
	"storefront-client/internal/form"
	"storefront-client/internal/model"
)

func (a *app) login(ctx context.Context, args []string) error {
	fs := a.newFlags("login")
	f := form.LoginForm{}
	fs.StringVar(&f.Email, "email", "", "account email")
	fs.StringVar(&f.Password, "password", "", "account password")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}

	if errs := f.Validate(); len(errs) > 0 {
		renderFormErrors(a.out, errs)
		return errs
	}

	result, err := a.auth.Login(ctx, f.Credentials())
	if err != nil {
		return errors.New(a.auth.State().Error)
	}

	fmt.Fprintf(a.out, "Welcome back, %s!\n", result.User.Name)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := a.newFlags("register")
	f := form.SignupForm{}
	fs.StringVar(&f.Name, "name", "", "full name")
	fs.StringVar(&f.Email, "email", "", "account email")
	fs.StringVar(&f.Password, "password", "", "account password")
	fs.StringVar(&f.ConfirmPassword, "confirm", "", "password confirmation")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}

	if errs := f.Validate(); len(errs) > 0 {
		renderFormErrors(a.out, errs)
		return errs
	}

	result, err := a.auth.Register(ctx, f.Registration())
	if err != nil {
		return errors.New(a.auth.State().Error)
	}

	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", result.User.Name)
	return nil
}

func (a *app) logout(ctx context.Context, args []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *app) whoami(ctx context.Context, args []string) error {
	state := a.auth.State()
	if !state.IsAuthenticated || state.User == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", state.User.Name, state.User.Email, state.User.Role)
	return nil
}

func (a *app) listProducts(ctx context.Context, args []string) error {
	fs := a.newFlags("products")
	term := fs.String("q", "", "search term")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}

	if err := a.products.FetchProducts(ctx); err != nil {
		return failed(err, a.products.State().Error)
	}

	renderProducts(a.out, a.products.Search(*term))
	return nil
}

func (a *app) showProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	product, err := a.products.FetchProductByID(ctx, args[0])
	if err != nil {
		return failed(err, a.products.State().Error)
	}

	renderProduct(a.out, product)
	return nil
}

// productFlags binds the product form to a flag set.
func (a *app) productFlags(name string) (*form.ProductForm, func([]string, int) ([]string, error)) {
	fs := a.newFlags(name)
	f := &form.ProductForm{}
	fs.StringVar(&f.Name, "name", "", "product name")
	fs.StringVar(&f.Description, "description", "", "product description")
	fs.StringVar(&f.Price, "price", "", "unit price")
	fs.StringVar(&f.Image, "image", "", "absolute image URL")
	return f, func(args []string, want int) ([]string, error) { return parse(fs, args, want) }
}

func (a *app) createProduct(ctx context.Context, args []string) error {
	f, parseArgs := a.productFlags("product-create")
	if _, err := parseArgs(args, 0); err != nil {
		return err
	}

	input, err := f.Input()
	if err != nil {
		renderFormErrors(a.out, f.Validate())
		return err
	}

	product, err := a.products.CreateProduct(ctx, input)
	if err != nil {
		return failed(err, a.products.State().Error)
	}

	fmt.Fprintf(a.out, "Product created: %s (%s)\n", product.Name, product.ID)
	return nil
}

func (a *app) updateProduct(ctx context.Context, args []string) error {
	f, parseArgs := a.productFlags("product-update")
	positional, err := parseArgs(args, 1)
	if err != nil {
		return err
	}

	input, err := f.Input()
	if err != nil {
		renderFormErrors(a.out, f.Validate())
		return err
	}

	product, err := a.products.UpdateProduct(ctx, positional[0], input)
	if err != nil {
		return failed(err, a.products.State().Error)
	}

	fmt.Fprintf(a.out, "Product updated: %s (%s)\n", product.Name, product.ID)
	return nil
}

func (a *app) deleteProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	if err := a.products.DeleteProduct(ctx, args[0]); err != nil {
		return failed(err, a.products.State().Error)
	}

	fmt.Fprintf(a.out, "Product %s deleted.\n", args[0])
	return nil
}

func (a *app) showCart(ctx context.Context, args []string) error {
	if err := a.cart.FetchCart(ctx); err != nil {
		return failed(err, a.cart.State().Error)
	}

	renderCart(a.out, a.cart.State())
	return nil
}

func (a *app) addToCart(ctx context.Context, args []string) error {
	fs := a.newFlags("cart-add")
	qty := fs.Int("qty", 1, "quantity to add")
	positional, err := parse(fs, args, 1)
	if err != nil {
		return err
	}
	if *qty < 1 {
		return model.ErrInvalidQuantity
	}

	if _, err := a.cart.AddToCart(ctx, positional[0], *qty); err != nil {
		return failed(err, a.cart.State().Error)
	}

	fmt.Fprintln(a.out, "Added to cart.")
	renderCart(a.out, a.cart.State())
	return nil
}

// updateCart takes its arguments verbatim so a negative change is not
// mistaken for a flag.
func (a *app) updateCart(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	productID := args[0]
	change, err := strconv.Atoi(args[1])
	if err != nil {
		return errUsage
	}

	if err := a.cart.FetchCart(ctx); err != nil {
		return failed(err, a.cart.State().Error)
	}

	current := 0
	for _, item := range a.cart.State().Items {
		if item.ProductID() == productID {
			current = item.Quantity
			break
		}
	}
	if current == 0 {
		return fmt.Errorf("product %s is not in your cart", productID)
	}

	if err := a.cart.UpdateQuantity(ctx, productID, current, change); err != nil {
		if errors.Is(err, model.ErrInvalidQuantity) {
			return err
		}
		return fmt.Errorf("failed to update quantity: %s", a.cart.State().Error)
	}

	renderCart(a.out, a.cart.State())
	return nil
}

func (a *app) removeFromCart(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	if err := a.cart.RemoveFromCart(ctx, args[0]); err != nil {
		return failed(err, a.cart.State().Error)
	}

	fmt.Fprintln(a.out, "Item removed from cart.")
	renderCart(a.out, a.cart.State())
	return nil
}

func (a *app) placeOrder(ctx context.Context, args []string) error {
	fs := a.newFlags("checkout")
	f := form.CheckoutForm{}
	var mode string
	fs.StringVar(&f.Name, "name", "", "full name")
	fs.StringVar(&f.Email, "email", "", "contact email")
	fs.StringVar(&f.Phone, "phone", "", "contact phone")
	fs.StringVar(&f.Address, "address", "", "shipping address")
	fs.StringVar(&f.City, "city", "", "city")
	fs.StringVar(&f.ZipCode, "zip", "", "ZIP code")
	fs.StringVar(&mode, "payment", string(model.PaymentCOD), "payment mode: COD, UPI or Card")
	fs.StringVar(&f.Payment.CardNumber, "card-number", "", "card number")
	fs.StringVar(&f.Payment.CardHolder, "card-holder", "", "card holder name")
	fs.StringVar(&f.Payment.ExpiryDate, "expiry", "", "card expiry (MM/YY)")
	fs.StringVar(&f.Payment.CVV, "cvv", "", "card CVV")
	fs.StringVar(&f.Payment.UPIID, "upi", "", "UPI ID")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}
	f.PaymentMode = model.PaymentMode(mode)

	if err := a.cart.FetchCart(ctx); err != nil {
		return failed(err, a.cart.State().Error)
	}

	order, err := a.checkout.PlaceOrder(ctx, f)
	if err != nil {
		var errs form.Errors
		if errors.As(err, &errs) {
			renderFormErrors(a.out, errs)
			return errors.New("please fix the errors in the form")
		}
		if state := a.orders.State(); state.Error != "" {
			return errors.New(state.Error)
		}
		return err
	}

	fmt.Fprintln(a.out, "Order placed successfully!")
	renderReceipt(a.out, order)
	return nil
}

func (a *app) listOrders(ctx context.Context, args []string) error {
	if err := a.orders.FetchOrders(ctx); err != nil {
		return failed(err, a.orders.State().Error)
	}

	renderOrders(a.out, a.orders.State().Orders, false)
	return nil
}

func (a *app) listAllOrders(ctx context.Context, args []string) error {
	if err := a.orders.FetchAllOrders(ctx); err != nil {
		return failed(err, a.orders.State().Error)
	}

	renderOrders(a.out, a.orders.State().Orders, true)
	return nil
}

func (a *app) receipt(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	if err := a.orders.FetchOrders(ctx); err != nil {
		return failed(err, a.orders.State().Error)
	}

	order, ok := a.orders.Find(args[0])
	if !ok {
		return fmt.Errorf("order %s not found", args[0])
	}

	renderReceipt(a.out, order)
	return nil
}

func (a *app) importCatalog(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	records, err := a.loader.Load(ctx, args[0])
	if err != nil {
		return err
	}

	report, err := a.importer.Import(ctx, records)
	if report != nil {
		renderImportReport(a.out, report)
	}
	return err
}

// failed reduces a store failure to its display message, pointing the user
// back to login when the server rejected the session.
func failed(err error, message string) error {
	if api.IsUnauthorized(err) {
		return fmt.Errorf("%s (session expired, run: storefront login)", message)
	}
	return errors.New(message)
}
