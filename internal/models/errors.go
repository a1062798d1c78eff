package models

import "fmt"

// DomainError carries a stable string code consumed by API clients.
// Handlers map these to HTTP 400; anything else surfaces as a generic
// 500 without a business code.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewDomainError builds a DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Fixed domain errors. Codes are part of the client contract and must
// not change.
var (
	ErrInvalidPaymentPreauth = NewDomainError("ERR_INVALID_PAYMENT_PREAUTH", "Payment pre-authorization was declined")
	ErrInvalidTransition     = NewDomainError("ERR_INVALID_STATUS_TRANSITION", "Call status transition is not allowed")
	ErrNoDefaultCard         = NewDomainError("ERR_NO_DEFAULT_CARD", "No default payment method on file")
	ErrNotFound              = NewDomainError("ERR_NOT_FOUND", "Record not found")
	ErrForbidden             = NewDomainError("ERR_FORBIDDEN", "You do not have access to this record")
)
