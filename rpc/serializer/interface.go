package serializer

// IAPISerializer is the interface for all payload serializers
type IAPISerializer interface {
	// Serialize serializes a payload into a byte array
	// It returns the serialized byte array and an error if any
	Serialize(v any) ([]byte, error)
	// Deserialize deserializes a byte array into the value pointed to by v
	// It returns an error if any
	Deserialize(b []byte, v any) error
	// ContentType returns the media type written to the Content-Type header
	ContentType() string
}
