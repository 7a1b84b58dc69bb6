package environment

import (
	"context"

	"github.com/satoryu/rbs/internal/ctxlog"
	"github.com/satoryu/rbs/internal/sig"
)

// Environment is the registry of everything loaded during one run. The host
// library set is fixed at construction; libraries and declarations accumulate
// as the loader registers them.
type Environment struct {
	hostLibraries map[string]struct{}
	libraries     map[string]*sig.Library
	decls         map[string]*sig.Decl
	declOwner     map[string]*sig.Library
}

// New creates an Environment seeded with the given host libraries.
func New(hostLibraries []string) *Environment {
	env := &Environment{
		hostLibraries: make(map[string]struct{}, len(hostLibraries)),
		libraries:     make(map[string]*sig.Library),
		decls:         make(map[string]*sig.Decl),
		declOwner:     make(map[string]*sig.Library),
	}
	for _, name := range hostLibraries {
		env.hostLibraries[name] = struct{}{}
	}
	return env
}

// HasLibrary reports whether a library name can satisfy a requires clause:
// either the host provides it, or it was registered earlier in this run.
func (env *Environment) HasLibrary(name string) bool {
	if _, ok := env.hostLibraries[name]; ok {
		return true
	}
	_, ok := env.libraries[name]
	return ok
}

// Register adds a parsed library and all of its declarations. Registering a
// library or declaration name twice is a hard error: the batch input is
// malformed and continuing would leave the environment ambiguous.
func (env *Environment) Register(ctx context.Context, lib *sig.Library) error {
	logger := ctxlog.FromContext(ctx)

	if prev, exists := env.libraries[lib.Name]; exists {
		return &DuplicateError{
			Kind:     "library",
			Name:     lib.Name,
			File:     lib.Source.FilePath,
			PrevFile: prev.Source.FilePath,
		}
	}

	seen := make(map[string]struct{}, len(lib.Decls))
	for _, decl := range lib.Decls {
		if prev, exists := env.declOwner[decl.Name]; exists {
			return &DuplicateError{
				Kind:     decl.Kind.String(),
				Name:     decl.Name,
				File:     lib.Source.FilePath,
				PrevFile: prev.Source.FilePath,
			}
		}
		// A library may not declare the same name twice either.
		if _, dup := seen[decl.Name]; dup {
			return &DuplicateError{
				Kind:     decl.Kind.String(),
				Name:     decl.Name,
				File:     lib.Source.FilePath,
				PrevFile: lib.Source.FilePath,
			}
		}
		seen[decl.Name] = struct{}{}
	}

	env.libraries[lib.Name] = lib
	for _, decl := range lib.Decls {
		env.decls[decl.Name] = decl
		env.declOwner[decl.Name] = lib
	}

	logger.Debug("Library registered.", "library", lib.Name, "declarations", len(lib.Decls))
	return nil
}

// Library returns a registered library by name, or nil.
func (env *Environment) Library(name string) *sig.Library {
	return env.libraries[name]
}

// Decl returns a registered declaration by qualified name, or nil.
func (env *Environment) Decl(name string) *sig.Decl {
	return env.decls[name]
}

// LibraryCount returns the number of registered libraries.
func (env *Environment) LibraryCount() int {
	return len(env.libraries)
}

// DeclCount returns the number of registered declarations.
func (env *Environment) DeclCount() int {
	return len(env.decls)
}
