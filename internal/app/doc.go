// Package app wires the application together: it owns the configured logger,
// the declaration environment and the selective loader, and drives one batch
// run from configuration to completion.
package app
