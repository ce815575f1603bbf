package form

import (
	"net/url"
	"strings"

	"storefront-client/internal/model"

	"github.com/shopspring/decimal"
)

// Product form field names.
const (
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldImage       = "image"
)

var maxPrice = decimal.NewFromInt(1_000_000)

// ProductForm is the admin create/update form as typed by the user.
type ProductForm struct {
	Name        string
	Description string
	Price       string
	Image       string
}

// Validate checks the form, including that the price parses.
func (f ProductForm) Validate() Errors {
	errs := Errors{}
	validateProductText(errs, f.Name, f.Description, f.Image)

	errs.check(FieldPrice, strings.TrimSpace(f.Price) == "", "Price is required")
	if _, failed := errs[FieldPrice]; !failed {
		price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
		errs.check(FieldPrice, err != nil, "Price must be a valid number")
		if err == nil {
			validatePrice(errs, price)
		}
	}

	return errs
}

// Input converts a form into a request body, validating it first.
func (f ProductForm) Input() (model.ProductInput, error) {
	if err := f.Validate().Err(); err != nil {
		return model.ProductInput{}, err
	}

	price, _ := decimal.NewFromString(strings.TrimSpace(f.Price))
	return model.ProductInput{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Price:       price,
		Image:       strings.TrimSpace(f.Image),
	}, nil
}

// ValidateProductInput applies the product form rules to an already
// decoded request body.
func ValidateProductInput(input model.ProductInput) Errors {
	errs := Errors{}
	validateProductText(errs, input.Name, input.Description, input.Image)
	validatePrice(errs, input.Price)
	return errs
}

func validateProductText(errs Errors, name, description, image string) {
	name = strings.TrimSpace(name)
	errs.check(FieldName, name == "", "Product name is required")
	errs.check(FieldName, length(name) < 3, "Product name must be at least 3 characters")
	errs.check(FieldName, length(name) > 100, "Product name must not exceed 100 characters")

	description = strings.TrimSpace(description)
	errs.check(FieldDescription, description == "", "Description is required")
	errs.check(FieldDescription, length(description) < 10, "Description must be at least 10 characters")
	errs.check(FieldDescription, length(description) > 1000, "Description must not exceed 1000 characters")

	image = strings.TrimSpace(image)
	errs.check(FieldImage, image == "", "Image URL is required")
	errs.check(FieldImage, !absoluteURL(image), "Invalid URL format")
}

func validatePrice(errs Errors, price decimal.Decimal) {
	errs.check(FieldPrice, !price.IsPositive(), "Price must be greater than 0")
	errs.check(FieldPrice, price.GreaterThan(maxPrice), "Price must not exceed 1,000,000")
}

func absoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
