package sig

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/satoryu/rbs/internal/ctxlog"
)

// rootSchema defines the top-level structure of a .sig file, expecting one or
// more 'library' blocks.
type rootSchema struct {
	Libraries []*hclLibrary `hcl:"library,block"`
}

// hclLibrary represents a single 'library' block for decoding purposes.
type hclLibrary struct {
	Name        string   `hcl:"name,label"`
	Description string   `hcl:"description,optional"`
	Requires    []string `hcl:"requires,optional"`
	Body        hcl.Body `hcl:",remain"`
}

// declSchema collects the declaration blocks inside a library body.
type declSchema struct {
	Classes    []*hclDecl `hcl:"class,block"`
	Modules    []*hclDecl `hcl:"module,block"`
	Interfaces []*hclDecl `hcl:"interface,block"`
}

type hclDecl struct {
	Name       string   `hcl:"name,label"`
	Doc        string   `hcl:"doc,optional"`
	Superclass string   `hcl:"superclass,optional"`
	Includes   []string `hcl:"includes,optional"`
	Body       hcl.Body `hcl:",remain"`
}

type methodSchema struct {
	Methods []*hclMethod `hcl:"method,block"`
}

type hclMethod struct {
	Name    string         `hcl:"name,label"`
	Doc     string         `hcl:"doc,optional"`
	Returns hcl.Expression `hcl:"returns,optional"`
	Body    hcl.Body       `hcl:",remain"`
}

type paramSchema struct {
	Params []*hclParam `hcl:"param,block"`
}

type hclParam struct {
	Name     string         `hcl:"name,label"`
	Type     hcl.Expression `hcl:"type,optional"`
	Optional bool           `hcl:"optional,optional"`
}

// ParseFile reads a .sig file from disk and decodes it into libraries.
func ParseFile(ctx context.Context, path string) ([]*Library, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse signature file %s: %w", path, diags)
	}
	return decodeFile(ctx, hclFile, path)
}

// Parse decodes .sig content already held in memory, e.g. fetched from a
// remote target. The filename is only used for diagnostics.
func Parse(ctx context.Context, src []byte, filename string) ([]*Library, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse signature file %s: %w", filename, diags)
	}
	return decodeFile(ctx, hclFile, filename)
}

func decodeFile(ctx context.Context, hclFile *hcl.File, filename string) ([]*Library, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding signature file.", "file", filename)

	var root rootSchema
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode signature file %s: %w", filename, diags)
	}

	libs := make([]*Library, 0, len(root.Libraries))
	for _, raw := range root.Libraries {
		lib, err := newLibraryFromHCL(ctx, raw, filename)
		if err != nil {
			return nil, fmt.Errorf("library %q in %s: %w", raw.Name, filename, err)
		}
		libs = append(libs, lib)
	}

	logger.Debug("Signature file decoded.", "file", filename, "libraries", len(libs))
	return libs, nil
}

func newLibraryFromHCL(ctx context.Context, raw *hclLibrary, filename string) (*Library, error) {
	var body declSchema
	if diags := gohcl.DecodeBody(raw.Body, nil, &body); diags.HasErrors() {
		return nil, diags
	}

	lib := &Library{
		Name:        raw.Name,
		Description: raw.Description,
		Requires:    raw.Requires,
		Source:      NewSourceInfo(filename),
	}

	kinds := []struct {
		kind  Kind
		decls []*hclDecl
	}{
		{KindClass, body.Classes},
		{KindModule, body.Modules},
		{KindInterface, body.Interfaces},
	}
	for _, group := range kinds {
		for _, rawDecl := range group.decls {
			decl, err := newDeclFromHCL(ctx, group.kind, rawDecl)
			if err != nil {
				return nil, err
			}
			lib.Decls = append(lib.Decls, decl)
		}
	}

	return lib, nil
}

func newDeclFromHCL(ctx context.Context, kind Kind, raw *hclDecl) (*Decl, error) {
	if kind != KindClass && raw.Superclass != "" {
		return nil, fmt.Errorf("%s %q: only classes may declare a superclass", kind, raw.Name)
	}

	var body methodSchema
	if diags := gohcl.DecodeBody(raw.Body, nil, &body); diags.HasErrors() {
		return nil, diags
	}

	decl := &Decl{
		Kind:       kind,
		Name:       raw.Name,
		Doc:        raw.Doc,
		Superclass: raw.Superclass,
		Includes:   raw.Includes,
	}

	seen := make(map[string]struct{}, len(body.Methods))
	for _, rawMethod := range body.Methods {
		if _, dup := seen[rawMethod.Name]; dup {
			return nil, fmt.Errorf("%s %q: duplicate method %q", kind, raw.Name, rawMethod.Name)
		}
		seen[rawMethod.Name] = struct{}{}

		method, err := newMethodFromHCL(ctx, rawMethod)
		if err != nil {
			return nil, fmt.Errorf("%s %q, method %q: %w", kind, raw.Name, rawMethod.Name, err)
		}
		decl.Methods = append(decl.Methods, method)
	}

	return decl, nil
}

func newMethodFromHCL(ctx context.Context, raw *hclMethod) (*Method, error) {
	returns, returnRefs, err := typeExprToCtyType(ctx, raw.Returns)
	if err != nil {
		return nil, fmt.Errorf("return type: %w", err)
	}

	var body paramSchema
	if diags := gohcl.DecodeBody(raw.Body, nil, &body); diags.HasErrors() {
		return nil, diags
	}

	method := &Method{
		Name:    raw.Name,
		Doc:     raw.Doc,
		Returns: returns,
	}

	seenRefs := make(map[string]struct{})
	addRefs := func(refs []string) {
		for _, ref := range refs {
			if _, ok := seenRefs[ref]; ok {
				continue
			}
			seenRefs[ref] = struct{}{}
			method.TypeRefs = append(method.TypeRefs, ref)
		}
	}
	addRefs(returnRefs)

	for _, rawParam := range body.Params {
		paramType, paramRefs, err := typeExprToCtyType(ctx, rawParam.Type)
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", rawParam.Name, err)
		}
		addRefs(paramRefs)
		method.Params = append(method.Params, Param{
			Name:     rawParam.Name,
			Type:     paramType,
			Optional: rawParam.Optional,
		})
	}

	return method, nil
}
