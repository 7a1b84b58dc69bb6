package environment

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/satoryu/rbs/internal/ctxlog"
	"github.com/satoryu/rbs/internal/sig"
)

// builtinAncestors are root-of-hierarchy names every runtime provides; a
// superclass reference to one of these never needs a matching declaration.
var builtinAncestors = map[string]struct{}{
	"Object":      {},
	"BasicObject": {},
}

// Validate performs a cross-reference check over everything registered: every
// superclass must resolve to a class (or a builtin ancestor), every included
// name must resolve to a module or interface, and every declared name used as
// a method param or return type must resolve to some declaration. Violations
// are aggregated so one run reports them all.
func (env *Environment) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	names := make([]string, 0, len(env.decls))
	for name := range env.decls {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		decl := env.decls[name]

		if decl.Superclass != "" {
			if _, builtin := builtinAncestors[decl.Superclass]; !builtin {
				parent, ok := env.decls[decl.Superclass]
				switch {
				case !ok:
					errs = append(errs, fmt.Sprintf("class %q: superclass %q is not declared", name, decl.Superclass))
				case parent.Kind != sig.KindClass:
					errs = append(errs, fmt.Sprintf("class %q: superclass %q is a %s, not a class", name, decl.Superclass, parent.Kind))
				}
			}
		}

		for _, included := range decl.Includes {
			mixin, ok := env.decls[included]
			switch {
			case !ok:
				errs = append(errs, fmt.Sprintf("%s %q: includes %q which is not declared", decl.Kind, name, included))
			case mixin.Kind == sig.KindClass:
				errs = append(errs, fmt.Sprintf("%s %q: includes %q which is a class; only modules and interfaces can be mixed in", decl.Kind, name, included))
			}
		}

		for _, method := range decl.Methods {
			for _, ref := range method.TypeRefs {
				if _, builtin := builtinAncestors[ref]; builtin {
					continue
				}
				if _, ok := env.decls[ref]; !ok {
					errs = append(errs, fmt.Sprintf("%s %q, method %q: type references %q which is not declared", decl.Kind, name, method.Name, ref))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("environment validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Environment validation passed.", "declarations", len(env.decls))
	return nil
}
