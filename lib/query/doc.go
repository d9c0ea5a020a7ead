// Package query implements filtering and summary aggregation over a
// dataset.Table.
//
// The package focuses on:
//   - Translating request parameters into a typed Filters value
//   - Narrowing the table with AND-combined, order independent predicates
//   - Computing the fixed summary statistics over the whole table
//   - Reporting failures through typed error codes instead of panics
//
// Key Components:
//
//   - IQueryService: The interface served over HTTP. An implementation is
//     created with NewQueryService, which takes the table it operates on. The
//     table is injected rather than held in a package variable, so tests can
//     build services over synthetic tables.
//
//   - Filters: Optional batter/pitcher substrings and inclusive numeric bounds.
//     ParseFilters is lenient: malformed numeric parameters are dropped and
//     reported through a RetCInvalidParameter error while every valid filter is
//     still returned.
//
//   - Error: Carries a RetCode (DataUnavailable, QueryError, InvalidParameter)
//     and a message. CodeOf extracts the code from any error chain.
//
// Thread Safety:
//
//	The service only reads the immutable table and allocates its results per
//	call, so a single instance can be shared by all request handlers.
package query
