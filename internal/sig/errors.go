package sig

import "fmt"

// MissingLibraryError reports that a library named in a `requires` clause is
// not available in the loading environment. It carries the missing library's
// name as structured data so callers classify by name, never by matching the
// formatted message.
type MissingLibraryError struct {
	Library  string // the absent host library
	Requirer string // the library whose requires clause named it
}

// Error implements the error interface.
func (e *MissingLibraryError) Error() string {
	return fmt.Sprintf("cannot load such library -- %s (required by %s)", e.Library, e.Requirer)
}
