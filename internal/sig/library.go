package sig

// Library is the unit of loading: one `library` block from a .sig file. It
// groups the declarations a runtime library contributes and names, via
// Requires, the host libraries that must be present before it can be used.
type Library struct {
	Name        string
	Description string
	Requires    []string
	Decls       []*Decl
	Source      *SourceInfo
}

// Kind distinguishes the three declaration flavours a library may contain.
type Kind int

const (
	KindClass Kind = iota
	KindModule
	KindInterface
)

// String returns the declaration keyword for the kind.
func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindModule:
		return "module"
	case KindInterface:
		return "interface"
	default:
		return "unknown"
	}
}

// Decl is a single class, module or interface declaration. Superclass is only
// meaningful for KindClass; Includes names the modules and interfaces mixed in.
type Decl struct {
	Kind       Kind
	Name       string
	Doc        string
	Superclass string
	Includes   []string
	Methods    []*Method
}
