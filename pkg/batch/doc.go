// Package batch discovers plan files and analyzes them concurrently.
//
// A Runner pairs the complexity scorer with a result cache: each file is
// keyed by its content hash and the scoring options, so re-running a batch
// over unchanged inputs reads results back instead of recomputing them.
// File failures never abort a run; every input ends up in exactly one of
// analyzed, skipped, or failed.
package batch
