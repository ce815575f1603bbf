package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"

	"storefront-client/internal/catalog"
	"storefront-client/internal/checkout"
	"storefront-client/internal/config"
	"storefront-client/internal/store"

	"github.com/rs/zerolog"
)

// errUsage marks a command invoked with bad arguments.
var errUsage = errors.New("invalid usage")

// app holds the stores a command operates on.
type app struct {
	cfg    *config.Config
	out    io.Writer
	logger zerolog.Logger

	auth     *store.AuthStore
	cart     *store.CartStore
	products *store.ProductStore
	orders   *store.OrderStore
	checkout *checkout.Flow
	loader   catalog.Loader
	importer *catalog.Importer
}

// command is a CLI subcommand.
type command struct {
	usage  string
	access *store.Access
	run    func(a *app, ctx context.Context, args []string) error
}

func guard(access store.Access) *store.Access {
	return &access
}

var commands = map[string]command{
	"login":          {usage: "login -email E -password P", run: (*app).login},
	"register":       {usage: "register -name N -email E -password P -confirm P", run: (*app).register},
	"logout":         {usage: "logout", run: (*app).logout},
	"whoami":         {usage: "whoami", run: (*app).whoami},
	"products":       {usage: "products [-q term]", run: (*app).listProducts},
	"product":        {usage: "product <id>", run: (*app).showProduct},
	"product-create": {usage: "product-create -name N -description D -price P -image URL", access: guard(store.AdminOnly), run: (*app).createProduct},
	"product-update": {usage: "product-update <id> -name N -description D -price P -image URL", access: guard(store.AdminOnly), run: (*app).updateProduct},
	"product-delete": {usage: "product-delete <id>", access: guard(store.AdminOnly), run: (*app).deleteProduct},
	"cart":           {usage: "cart", access: guard(store.CustomerOnly), run: (*app).showCart},
	"cart-add":       {usage: "cart-add <product-id> [-qty N]", access: guard(store.CustomerOnly), run: (*app).addToCart},
	"cart-update":    {usage: "cart-update <product-id> <change>", access: guard(store.CustomerOnly), run: (*app).updateCart},
	"cart-remove":    {usage: "cart-remove <product-id>", access: guard(store.CustomerOnly), run: (*app).removeFromCart},
	"checkout":       {usage: "checkout -name N -email E -phone P -address A -city C -zip Z -payment COD|UPI|Card [payment flags]", access: guard(store.CustomerOnly), run: (*app).placeOrder},
	"orders":         {usage: "orders", access: guard(store.CustomerOnly), run: (*app).listOrders},
	"orders-all":     {usage: "orders-all", access: guard(store.AdminOnly), run: (*app).listAllOrders},
	"receipt":        {usage: "receipt <order-id>", access: guard(store.CustomerOnly), run: (*app).receipt},
	"import-catalog": {usage: "import-catalog <path>", access: guard(store.AdminOnly), run: (*app).importCatalog},
}

// dispatch runs the command named by args[0].
func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" {
		a.usage()
		return nil
	}

	cmd, ok := commands[args[0]]
	if !ok {
		a.usage()
		return fmt.Errorf("unknown command %q", args[0])
	}

	if cmd.access != nil {
		if err := a.auth.Authorize(*cmd.access); err != nil {
			return err
		}
	}

	err := cmd.run(a, ctx, args[1:])
	if errors.Is(err, errUsage) {
		return fmt.Errorf("usage: storefront %s", cmd.usage)
	}
	return err
}

func (a *app) usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "Usage: storefront <command> [arguments]")
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Commands:")
	for _, name := range names {
		fmt.Fprintf(a.out, "  %s\n", commands[name].usage)
	}
}

// newFlags returns a flag set that reports parse errors as errUsage.
func (a *app) newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parse parses flags that may follow up to want positional arguments.
func parse(fs *flag.FlagSet, args []string, want int) ([]string, error) {
	var positional []string
	for len(positional) < want && len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		positional = append(positional, args[0])
		args = args[1:]
	}

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}

	positional = append(positional, fs.Args()...)
	if len(positional) != want {
		return nil, errUsage
	}
	return positional, nil
}
