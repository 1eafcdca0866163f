// Package steps holds the geometric transforms a pipeline applies to a
// model: layering (flat, dipping), folding, faulting, water layers and salt
// bodies.
//
// Every step owns its random stream. Two steps built without WithSeed draw
// independently; a run is reproducible only when every step is seeded.
package steps
