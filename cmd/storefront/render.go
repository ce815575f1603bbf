package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"storefront-client/internal/catalog"
	"storefront-client/internal/form"
	"storefront-client/internal/model"
	"storefront-client/internal/store"

	"github.com/shopspring/decimal"
)

const dateLayout = "Jan 2, 2006 15:04"

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func productName(p *model.Product) string {
	if p == nil {
		return "(unavailable)"
	}
	if p.Name == "" {
		return p.ID
	}
	return p.Name
}

func renderProducts(out io.Writer, products []model.Product) {
	if len(products) == 0 {
		fmt.Fprintln(out, "No products found.")
		return
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, money(p.Price))
	}
	tw.Flush()
}

func renderProduct(out io.Writer, p *model.Product) {
	fmt.Fprintf(out, "%s  %s\n", p.Name, money(p.Price))
	if p.Description != "" {
		fmt.Fprintf(out, "\n%s\n", p.Description)
	}
	if p.Image != "" {
		fmt.Fprintf(out, "\nImage: %s\n", p.Image)
	}
}

func renderCart(out io.Writer, state store.CartState) {
	if len(state.Items) == 0 {
		fmt.Fprintln(out, "Your cart is empty.")
		return
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "PRODUCT\tNAME\tQTY\tPRICE\tSUBTOTAL")
	for _, item := range state.Items {
		price := "-"
		if item.Product != nil {
			price = money(item.Product.Price)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			item.ProductID(), productName(item.Product), item.Quantity, price, money(item.Subtotal()))
	}
	fmt.Fprintf(tw, "\t\t\tTOTAL\t%s\n", money(state.TotalPrice))
	tw.Flush()
}

func renderOrders(out io.Writer, orders []model.Order, withCustomer bool) {
	if len(orders) == 0 {
		fmt.Fprintln(out, "No orders yet.")
		return
	}

	tw := newTable(out)
	if withCustomer {
		fmt.Fprintln(tw, "ORDER\tDATE\tCUSTOMER\tITEMS\tPAYMENT\tTOTAL")
	} else {
		fmt.Fprintln(tw, "ORDER\tDATE\tITEMS\tPAYMENT\tTOTAL")
	}

	for _, o := range orders {
		date := "-"
		if !o.CreatedAt.IsZero() {
			date = o.CreatedAt.Local().Format(dateLayout)
		}

		if withCustomer {
			customer := "-"
			if o.User != nil {
				customer = o.User.Email
				if customer == "" {
					customer = o.User.ID
				}
			}
			fmt.Fprintf(tw, "#%s\t%s\t%s\t%d\t%s\t%s\n", o.DisplayID(), date, customer, len(o.Items), o.PaymentMode, money(o.Total()))
			continue
		}
		fmt.Fprintf(tw, "#%s\t%s\t%d\t%s\t%s\n", o.DisplayID(), date, len(o.Items), o.PaymentMode, money(o.Total()))
	}
	tw.Flush()
}

func renderReceipt(out io.Writer, o *model.Order) {
	fmt.Fprintf(out, "Order #%s\n", o.DisplayID())
	if !o.CreatedAt.IsZero() {
		fmt.Fprintf(out, "Placed: %s\n", o.CreatedAt.Local().Format(dateLayout))
	}
	fmt.Fprintf(out, "Payment: %s\n\n", o.PaymentMode)

	tw := newTable(out)
	fmt.Fprintln(tw, "ITEM\tQTY\tPRICE\tSUBTOTAL")
	for _, item := range o.Items {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", productName(item.Product), item.Quantity, money(item.UnitPrice()), money(item.Subtotal()))
	}
	fmt.Fprintf(tw, "\t\tTOTAL\t%s\n", money(o.Total()))
	tw.Flush()
}

func renderFormErrors(out io.Writer, errs form.Errors) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		fmt.Fprintf(out, "  %s: %s\n", field, errs[field])
	}
}

func renderImportReport(out io.Writer, r *catalog.Report) {
	fmt.Fprintf(out, "Imported %d of %d products (%d rejected, %d failed)\n",
		len(r.Created), r.Total(), len(r.Rejected), len(r.Failed))

	for _, rej := range r.Rejected {
		fmt.Fprintf(out, "line %d %s rejected:\n", rej.Line, rej.Name)
		renderFormErrors(out, rej.Errors)
	}
	for _, f := range r.Failed {
		fmt.Fprintf(out, "line %d %s failed: %v\n", f.Line, f.Name, f.Err)
	}
}
