package environment

import "fmt"

// DuplicateError reports a library or declaration name registered twice,
// naming both source files so the conflict can be located.
type DuplicateError struct {
	Kind     string
	Name     string
	File     string
	PrevFile string
}

// Error implements the error interface.
func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s %q in %s (previously declared in %s)", e.Kind, e.Name, e.File, e.PrevFile)
}
