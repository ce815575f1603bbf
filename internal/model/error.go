package model

// Standard error codes for client-side failures
const (
	ErrCodeNotAuthenticated   = "NOT_AUTHENTICATED"
	ErrCodeAdminOnly          = "ADMIN_ONLY"
	ErrCodeAdminRestricted    = "ADMIN_RESTRICTED"
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeInvalidPaymentMode = "INVALID_PAYMENT_MODE"
	ErrCodeMissingField       = "MISSING_FIELD"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotAuthenticated   = NewDomainError(ErrCodeNotAuthenticated, "Please login to continue")
	ErrAdminOnly          = NewDomainError(ErrCodeAdminOnly, "Admin access required")
	ErrAdminRestricted    = NewDomainError(ErrCodeAdminRestricted, "Admins can only manage products")
	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "Your cart is empty")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be at least 1")
	ErrInvalidPaymentMode = NewDomainError(ErrCodeInvalidPaymentMode, "Payment mode must be COD, UPI or Card")
	ErrMissingProductID   = NewDomainError(ErrCodeMissingField, "Product ID is required")
)
