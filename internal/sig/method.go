package sig

import "github.com/zclconf/go-cty/cty"

// Method is one method signature within a declaration. Returns defaults to
// cty.DynamicPseudoType when the .sig file declares no return type, matching
// the `any` keyword in type expressions.
type Method struct {
	Name    string
	Doc     string
	Params  []Param
	Returns cty.Type

	// TypeRefs lists the declared names referenced by the param and return
	// types, deduplicated in first-appearance order. The environment checks
	// them against the registered declarations after the batch.
	TypeRefs []string
}

// Param is a single named parameter of a method signature.
type Param struct {
	Name     string
	Type     cty.Type
	Optional bool
}
