package synthesis

import (
	"errors"
	"fmt"
)

var ErrEmptyPrompt = errors.New("scenario prompt is empty")

// ParseError means the model reply was not a JSON array at all.
type ParseError struct {
	Table string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: reply is not a JSON array: %v", e.Table, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError means the reply parsed but a record broke the table's rules.
// Index is -1 for problems with the array as a whole.
type SchemaError struct {
	Table  string
	Index  int
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", e.Table, e.Reason)
	}
	if e.Field == "" {
		return fmt.Sprintf("%s[%d]: %s", e.Table, e.Index, e.Reason)
	}
	return fmt.Sprintf("%s[%d].%s: %s", e.Table, e.Index, e.Field, e.Reason)
}
