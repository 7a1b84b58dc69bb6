// Package environment holds the process-wide view of loaded signature
// declarations: which libraries have been registered, which declarations they
// contributed, and which host libraries the surrounding runtime is assumed to
// provide. It is the single mutable structure the selective loader writes to.
package environment
