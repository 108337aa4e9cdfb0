// Package factors holds the static emission, energy, water and disposal
// factors used by the impact model.
//
// Every table is keyed by a normalised category name (see NormalizeKey). A
// lookup never fails: unknown categories resolve to a documented fallback and
// the lookup reports that the fallback was used, so callers can surface an
// "unknown category" notice without treating it as an error.
//
// The tables are package-level values built once at init and never mutated.
package factors
