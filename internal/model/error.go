package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON           = "INVALID_JSON"
	ErrCodeMissingField          = "MISSING_FIELD"
	ErrCodeInvalidCatalog        = "INVALID_CATALOG"
	ErrCodeInvalidDiscountConfig = "INVALID_DISCOUNT_CONFIG"
	ErrCodeBundleNotFound        = "BUNDLE_NOT_FOUND"
	ErrCodeInvalidBundleID       = "INVALID_BUNDLE_ID"
	ErrCodeStoreDisabled         = "STORE_DISABLED"
	ErrCodeUnauthorised          = "UNAUTHORIZED"
	ErrCodeMethodNotAllowed      = "METHOD_NOT_ALLOWED"
	ErrCodeInternalError         = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapDomainError attaches a cause to a domain error code.
func WrapDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors
var (
	ErrBundleNotFound = NewDomainError(ErrCodeBundleNotFound, "Bundle not found")
	ErrStoreDisabled  = NewDomainError(ErrCodeStoreDisabled, "Bundle store is not enabled")
)
