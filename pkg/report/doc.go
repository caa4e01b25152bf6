// Package report turns evaluated plans into run reports and serializes them.
//
// A Report covers one analysis run: its identity (run ID, tool version,
// scoring options), one PlanReport per usable input file, and the files that
// were skipped. Reports render to CSV (one row per fraction group) or JSON,
// and can be persisted through a Store.
package report
