// Package serializer converts API payloads to and from their wire
// representation. The server serializes every Response payload through an
// IAPISerializer and the client uses the same implementation to decode them,
// which keeps the wire format defined in one place.
//
// Implementations:
//
//   - JSON (NewJSONSerializer): encoding/json with application/json content
//     type. Row projections rely on dataset.Float's JSON methods to render
//     missing values as an empty string.
package serializer
