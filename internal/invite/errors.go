package invite

import "fmt"

// ResourceNotFoundError reports a recipient file that does not exist or
// cannot be opened.
type ResourceNotFoundError struct {
	Path string
	Err  error
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("recipient file %s not found or unreadable: %v", e.Path, e.Err)
}

func (e *ResourceNotFoundError) Unwrap() error { return e.Err }

// SchemaError reports a required column absent from the header row.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("recipient file is missing the %q column", e.Column)
}
