package form

import (
	"regexp"
	"strings"

	"storefront-client/internal/model"
)

// Checkout form field names.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldAddress     = "address"
	FieldCity        = "city"
	FieldZipCode     = "zipCode"
	FieldPaymentMode = "paymentMode"
	FieldCardNumber  = "cardNumber"
	FieldCardHolder  = "cardHolder"
	FieldExpiryDate  = "expiryDate"
	FieldCVV         = "cvv"
	FieldUPIID       = "upiId"
)

var (
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern    = regexp.MustCompile(`^\d{3}$`)
	upiPattern    = regexp.MustCompile(`^[\w.-]+@[\w.-]+$`)
)

// PaymentDetails holds the fields of the selected payment mode.
// They are validated locally and never sent to the API.
type PaymentDetails struct {
	CardNumber string
	CardHolder string
	ExpiryDate string
	CVV        string
	UPIID      string
}

// CheckoutForm is the shipping and payment form submitted at checkout.
type CheckoutForm struct {
	Name        string
	Email       string
	Phone       string
	Address     string
	City        string
	ZipCode     string
	PaymentMode model.PaymentMode
	Payment     PaymentDetails
}

// Validate returns the first failing rule per field; an empty result means
// the form may be submitted.
func (f CheckoutForm) Validate() Errors {
	errs := Errors{}

	errs.check(FieldName, blank(f.Name), "Name is required")
	errs.check(FieldName, length(strings.TrimSpace(f.Name)) < 2, "Name must be at least 2 characters")

	errs.check(FieldEmail, f.Email == "", "Email is required")
	errs.check(FieldEmail, !emailPattern.MatchString(f.Email), "Invalid email address")

	errs.check(FieldPhone, f.Phone == "", "Phone number is required")
	errs.check(FieldPhone, !phonePattern.MatchString(f.Phone), "Invalid phone number format")
	errs.check(FieldPhone, len(nonDigits.ReplaceAllString(f.Phone, "")) < 10, "Phone number must be at least 10 digits")

	errs.check(FieldAddress, blank(f.Address), "Address is required")
	errs.check(FieldAddress, length(strings.TrimSpace(f.Address)) < 10, "Address must be at least 10 characters")

	errs.check(FieldCity, blank(f.City), "City is required")
	errs.check(FieldCity, length(strings.TrimSpace(f.City)) < 2, "City name is too short")

	errs.check(FieldZipCode, f.ZipCode == "", "ZIP code is required")
	errs.check(FieldZipCode, !zipPattern.MatchString(f.ZipCode), "ZIP code must be 5-6 digits")

	switch f.PaymentMode {
	case model.PaymentCOD:
	case model.PaymentCard:
		f.Payment.validateCard(errs)
	case model.PaymentUPI:
		f.Payment.validateUPI(errs)
	default:
		errs.check(FieldPaymentMode, true, model.ErrInvalidPaymentMode.Message)
	}

	return errs
}

func (p PaymentDetails) validateCard(errs Errors) {
	errs.check(FieldCardNumber, p.CardNumber == "", "Card number is required")
	errs.check(FieldCardNumber, length(whitespace.ReplaceAllString(p.CardNumber, "")) < 16, "Card number must be 16 digits")

	errs.check(FieldCardHolder, p.CardHolder == "", "Card holder name is required")
	errs.check(FieldCardHolder, length(strings.TrimSpace(p.CardHolder)) < 3, "Card holder name is too short")

	errs.check(FieldExpiryDate, p.ExpiryDate == "", "Expiry date is required")
	errs.check(FieldExpiryDate, !expiryPattern.MatchString(p.ExpiryDate), "Invalid format (use MM/YY)")

	errs.check(FieldCVV, p.CVV == "", "CVV is required")
	errs.check(FieldCVV, !cvvPattern.MatchString(p.CVV), "CVV must be 3 digits")
}

func (p PaymentDetails) validateUPI(errs Errors) {
	errs.check(FieldUPIID, p.UPIID == "", "UPI ID is required")
	errs.check(FieldUPIID, !upiPattern.MatchString(p.UPIID), "Invalid UPI ID format")
}
