// Package loader implements selective batch loading of signature declaration
// targets. Targets are processed strictly in input order. A load failure
// caused by a missing host library whose name matches the loader's known-fail
// set is logged and skipped; any other failure aborts the batch immediately,
// leaving later targets unattempted.
package loader
