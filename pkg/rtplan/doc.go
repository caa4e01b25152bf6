// Package rtplan defines the in-memory model of a radiotherapy treatment
// plan: Plan -> FxGroup -> Beam -> ControlPoint, mirroring the RT Plan
// hierarchy of fraction groups, beams, and per-control-point leaf and jaw
// positions.
//
// The model is populated once per input file and treated as immutable
// afterwards; every downstream computation (aperture construction,
// complexity scoring) reads it without mutation, so one Plan can be shared
// freely across goroutines.
//
// Parsing consumes the JSON plan-export interchange format (see Parse).
// Classification of candidate files into usable / wrong-modality /
// unreadable happens once at ingestion via Classify.
package rtplan
