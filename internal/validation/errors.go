package validation

import "strings"

type Code string

const (
	CodeMissingField     Code = "missing_field"
	CodeInvalidEnumValue Code = "invalid_enum_value"
	CodeInvalidFormat    Code = "invalid_format"
	CodeEmptyUpdate      Code = "empty_update"
)

// Error is a single validation failure, addressable by field and code so
// handlers can map it to a status code without string matching.
type Error struct {
	Code    Code   `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

type Errors []*Error

func (es Errors) Error() string {
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether any error in the list carries the given code.
func (es Errors) Has(code Code) bool {
	for _, e := range es {
		if e.Code == code {
			return true
		}
	}
	return false
}
