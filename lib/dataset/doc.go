// Package dataset provides the typed in-memory table of batted-ball events and
// the loader that builds it from a spreadsheet or CSV file.
//
// The package focuses on:
//   - A typed Row schema mirroring the columns of the source file
//   - An immutable, ordered Table that is safe for concurrent readers
//   - A lenient Load entry point that never fails and a strict ReadFile variant
//
// Key Components:
//
//   - Row: One batted-ball event. Numeric cells use Float, which carries a
//     validity flag so that missing values survive loading. Rows marshal to JSON
//     with the upper-case column names as keys and render missing values as an
//     empty string.
//
//   - Table: The ordered row sequence. It is built once and never mutated, so
//     any number of goroutines may read it without synchronisation.
//
//   - Loader: Load tries a list of candidate paths (primary first, fallbacks
//     after) and returns an empty Table when nothing usable is found. ReadFile
//     performs the actual read and validates the header up front, reporting a
//     *SchemaError when required columns are absent.
//
// Supported formats are chosen by file extension: .xlsx and .xlsm are read with
// excelize, .csv with encoding/csv.
package dataset
