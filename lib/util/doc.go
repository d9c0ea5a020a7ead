// Package util provides small numeric helpers shared by the query layer.
//
// The package focuses on:
//   - Descriptive statistics over a slice of float64 values (mean, min, max,
//     population standard deviation)
//   - Distinct value counting for categorical columns
//
// Missing values are never passed in: callers collect only the values that are
// present, so every helper here works on dense input.
package util
