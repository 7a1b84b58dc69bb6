// Package sig provides the Go struct representation of signature declaration
// files. A .sig file describes the shape of a scripting runtime's
// standard-library surface: libraries, the classes, modules and interfaces
// they contribute, and the method signatures those carry.
//
// The package deliberately stops at structure. It decodes HCL into a
// strongly-typed model and translates type expressions into cty types, but it
// never interprets the declared APIs: the declarations are metadata about an
// external system, not code this process can execute.
//
// The split between parsing (here) and registration (package environment)
// mirrors the split between a file on disk and the process-wide view of
// everything loaded so far. Parsing a file has no side effects; only
// registration mutates shared state, which keeps the selective loading loop
// easy to reason about.
package sig
