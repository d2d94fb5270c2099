package validation

import "fmt"

// ErrorCode classifies a validation failure
type ErrorCode string

const (
	// CodeRequired means a required field is absent or null
	CodeRequired ErrorCode = "Required"
	// CodeTypeMismatch means a field value has the wrong JSON kind
	CodeTypeMismatch ErrorCode = "TypeMismatch"
	// CodeMaxLength means a string exceeds its declared maximum length
	CodeMaxLength ErrorCode = "MaxLength"
	// CodePattern means a string does not match its declared pattern
	CodePattern ErrorCode = "Pattern"
	// CodeUnknownType means no descriptor is registered for the type key
	CodeUnknownType ErrorCode = "UnknownType"
	// CodeInvalidPayloadShape means the payload is not a JSON object
	CodeInvalidPayloadShape ErrorCode = "InvalidPayloadShape"
)

// FieldError is a single validation error. Field is empty for
// payload-level errors.
type FieldError struct {
	Field   string    `json:"field"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Error implements the error interface
func (fe FieldError) Error() string {
	if fe.Field == "" {
		return fe.Message
	}
	return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
}

// Result is the complete outcome of validating one payload. Errors are
// aggregated across all fields in one pass, in descriptor field order;
// callers must not assume first-error-only semantics.
type Result struct {
	Errors []FieldError `json:"errors"`
}

// IsValid reports whether validation produced no errors
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// add appends an error to the result
func (r *Result) add(field string, code ErrorCode, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Code: code, Message: message})
}
