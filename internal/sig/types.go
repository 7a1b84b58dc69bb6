// This file translates HCL type expressions into cty types. Beyond the cty
// primitives (`string`, `number`, `bool`, `any`) and collections
// (`list(T)`, `map(T)`, `set(T)`), signature files can use declared names as
// types: a bare capitalized identifier (`Pathname`) or, for namespaced names,
// the class() constructor (`class("URI::Generic")`). Declared-name types
// carry dynamic values; the referenced names are collected so the
// environment can cross-check them after the batch.

package sig

import (
	"context"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/satoryu/rbs/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// typeExprToCtyType converts an HCL type expression into its cty.Type
// equivalent and the declared names it references. A nil expression means
// the .sig file left the type out, which decodes as `any`.
func typeExprToCtyType(ctx context.Context, expr hcl.Expression) (cty.Type, []string, error) {
	if expr == nil {
		return cty.DynamicPseudoType, nil, nil
	}

	logger := ctxlog.FromContext(ctx)

	// A type switch over the concrete expression types is the supported way to
	// interpret an expression without evaluating it.
	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		if len(v.Args) != 1 {
			return cty.DynamicPseudoType, nil, fmt.Errorf("type constructors require exactly one argument, got %d", len(v.Args))
		}

		if v.Name == "class" {
			val, diags := v.Args[0].Value(nil)
			if diags.HasErrors() || val.IsNull() || !val.Type().Equals(cty.String) {
				return cty.DynamicPseudoType, nil, fmt.Errorf("class() requires a quoted class name")
			}
			name := val.AsString()
			logger.Debug("Parsed class reference type.", "class", name)
			return cty.DynamicPseudoType, []string{name}, nil
		}

		elementType, refs, err := typeExprToCtyType(ctx, v.Args[0])
		if err != nil {
			return cty.DynamicPseudoType, nil, err
		}
		// A dynamic element is only acceptable when it stands for a declared
		// name; a literal `any` inside a collection stays rejected.
		if elementType == cty.DynamicPseudoType && len(refs) == 0 {
			return cty.DynamicPseudoType, nil, fmt.Errorf("collection types cannot contain type 'any'")
		}

		switch v.Name {
		case "list":
			return cty.List(elementType), refs, nil
		case "map":
			return cty.Map(elementType), refs, nil
		case "set":
			return cty.Set(elementType), refs, nil
		default:
			return cty.DynamicPseudoType, nil, fmt.Errorf("unknown type constructor function %q", v.Name)
		}

	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return cty.DynamicPseudoType, nil, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		rootName := v.Traversal.RootName()
		switch rootName {
		case "string":
			return cty.String, nil, nil
		case "number":
			return cty.Number, nil, nil
		case "bool":
			return cty.Bool, nil, nil
		case "any":
			return cty.DynamicPseudoType, nil, nil
		}

		// Capitalized identifiers reference declared classes, modules or
		// interfaces by convention.
		if r, _ := utf8.DecodeRuneInString(rootName); unicode.IsUpper(r) {
			logger.Debug("Parsed class reference type.", "class", rootName)
			return cty.DynamicPseudoType, []string{rootName}, nil
		}
		return cty.DynamicPseudoType, nil, fmt.Errorf("unknown primitive type %q", rootName)

	default:
		return cty.DynamicPseudoType, nil, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}
