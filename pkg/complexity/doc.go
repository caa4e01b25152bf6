// Package complexity scores MLC aperture complexity.
//
// For each control point the open leaf-pair gaps are clipped to the jaw
// rectangle and the maximum field, unioned into aperture polygons, and scored
// as (xw*Px + yw*Py) / area, where Px and Py are the per-axis boundary path
// lengths of the aperture. Beam scores weight each control point by its
// forward meterset fraction; fraction-group and plan scores are MU-weighted
// means of their beam scores.
//
// Evaluation never mutates the plan model and isolates failures per beam: a
// beam with malformed geometry or invalid sequencing records an error result
// while its siblings score normally.
package complexity
