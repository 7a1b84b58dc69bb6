package environment

import (
	"context"
	"errors"
	"testing"

	"github.com/satoryu/rbs/internal/sig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLibrary(name, file string, decls ...*sig.Decl) *sig.Library {
	return &sig.Library{
		Name:   name,
		Decls:  decls,
		Source: sig.NewSourceInfo(file),
	}
}

func TestRegisterAndLookup(t *testing.T) {
	t.Parallel()

	env := New(nil)
	ctx := context.Background()

	lib := newLibrary("uri", "uri.sig",
		&sig.Decl{Kind: sig.KindClass, Name: "URI::Generic"},
		&sig.Decl{Kind: sig.KindModule, Name: "URI::Escape"},
	)
	require.NoError(t, env.Register(ctx, lib))

	assert.Equal(t, 1, env.LibraryCount())
	assert.Equal(t, 2, env.DeclCount())
	assert.Same(t, lib, env.Library("uri"))
	require.NotNil(t, env.Decl("URI::Generic"))
	assert.Equal(t, sig.KindClass, env.Decl("URI::Generic").Kind)
	assert.Nil(t, env.Library("socket"))
	assert.Nil(t, env.Decl("Socket"))
}

func TestHasLibrary(t *testing.T) {
	t.Parallel()

	env := New([]string{"socket", "zlib"})
	ctx := context.Background()

	// Host-provided libraries count.
	assert.True(t, env.HasLibrary("socket"))
	assert.False(t, env.HasLibrary("ldap"))

	// Libraries registered earlier in the run count too.
	require.NoError(t, env.Register(ctx, newLibrary("uri", "uri.sig")))
	assert.True(t, env.HasLibrary("uri"))
}

func TestRegister_DuplicateLibraryFails(t *testing.T) {
	t.Parallel()

	env := New(nil)
	ctx := context.Background()

	require.NoError(t, env.Register(ctx, newLibrary("uri", "first.sig")))
	err := env.Register(ctx, newLibrary("uri", "second.sig"))
	require.Error(t, err)

	var dup *DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "library", dup.Kind)
	assert.Equal(t, "uri", dup.Name)
	assert.Equal(t, "second.sig", dup.File)
	assert.Equal(t, "first.sig", dup.PrevFile)

	// The second registration must not have replaced the first.
	assert.Equal(t, "first.sig", env.Library("uri").Source.FilePath)
}

func TestRegister_DuplicateDeclAcrossLibrariesFails(t *testing.T) {
	t.Parallel()

	env := New(nil)
	ctx := context.Background()

	require.NoError(t, env.Register(ctx, newLibrary("set", "set.sig",
		&sig.Decl{Kind: sig.KindClass, Name: "Set"})))

	err := env.Register(ctx, newLibrary("sorted_set", "sorted_set.sig",
		&sig.Decl{Kind: sig.KindClass, Name: "Set"}))
	require.Error(t, err)

	var dup *DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "class", dup.Kind)
	assert.Equal(t, "Set", dup.Name)

	// A failed registration must leave no partial state behind.
	assert.Nil(t, env.Library("sorted_set"))
	assert.Equal(t, 1, env.LibraryCount())
}

func TestRegister_DuplicateDeclWithinLibraryFails(t *testing.T) {
	t.Parallel()

	env := New(nil)
	ctx := context.Background()

	err := env.Register(ctx, newLibrary("uri", "uri.sig",
		&sig.Decl{Kind: sig.KindClass, Name: "URI::Generic", Doc: "first"},
		&sig.Decl{Kind: sig.KindClass, Name: "URI::Generic", Doc: "second"},
	))
	require.Error(t, err)

	var dup *DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "class", dup.Kind)
	assert.Equal(t, "URI::Generic", dup.Name)
	assert.Equal(t, "uri.sig", dup.File)
	assert.Equal(t, "uri.sig", dup.PrevFile)

	// Neither half of the clashing pair may be registered.
	assert.Nil(t, env.Decl("URI::Generic"))
	assert.Equal(t, 0, env.LibraryCount())
	assert.Equal(t, 0, env.DeclCount())
}

func TestValidate_ResolvedReferencesPass(t *testing.T) {
	t.Parallel()

	env := New(nil)
	ctx := context.Background()

	require.NoError(t, env.Register(ctx, newLibrary("uri", "uri.sig",
		&sig.Decl{Kind: sig.KindInterface, Name: "URI::RFC2396_REGEXP"},
		&sig.Decl{Kind: sig.KindClass, Name: "URI::Generic", Superclass: "Object", Includes: []string{"URI::RFC2396_REGEXP"}},
		&sig.Decl{Kind: sig.KindClass, Name: "URI::HTTP", Superclass: "URI::Generic"},
	)))

	require.NoError(t, env.Validate(ctx))
}

func TestValidate_AggregatesViolations(t *testing.T) {
	t.Parallel()

	env := New(nil)
	ctx := context.Background()

	require.NoError(t, env.Register(ctx, newLibrary("broken", "broken.sig",
		&sig.Decl{Kind: sig.KindClass, Name: "Helper"},
		&sig.Decl{Kind: sig.KindClass, Name: "Orphan", Superclass: "Missing"},
		&sig.Decl{Kind: sig.KindClass, Name: "Mixed", Includes: []string{"Helper"}},
	)))

	err := env.Validate(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "environment validation failed")
	assert.Contains(t, err.Error(), `superclass "Missing" is not declared`)
	assert.Contains(t, err.Error(), `includes "Helper" which is a class`)
}

func TestValidate_MethodTypeRefsMustResolve(t *testing.T) {
	t.Parallel()

	env := New(nil)
	ctx := context.Background()

	require.NoError(t, env.Register(ctx, newLibrary("pathname", "pathname.sig",
		&sig.Decl{Kind: sig.KindClass, Name: "Pathname", Methods: []*sig.Method{
			{Name: "parent", TypeRefs: []string{"Pathname"}},
			{Name: "open", TypeRefs: []string{"File::Stat"}},
			{Name: "to_obj", TypeRefs: []string{"Object"}}, // builtin, always fine
		}},
	)))

	err := env.Validate(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `method "open": type references "File::Stat" which is not declared`)
	assert.NotContains(t, err.Error(), `"Pathname" which is not declared`)
	assert.NotContains(t, err.Error(), `"Object"`)
}

func TestValidate_SuperclassMustBeClass(t *testing.T) {
	t.Parallel()

	env := New(nil)
	ctx := context.Background()

	require.NoError(t, env.Register(ctx, newLibrary("broken", "broken.sig",
		&sig.Decl{Kind: sig.KindModule, Name: "Comparable"},
		&sig.Decl{Kind: sig.KindClass, Name: "Version", Superclass: "Comparable"},
	)))

	err := env.Validate(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `superclass "Comparable" is a module, not a class`)
}
