package reflectx

// BytesDecoder is implemented by argument types that decode themselves from the raw string
// argument of Call. It takes precedence over every other decoding.
type BytesDecoder interface {
	DecodeFromBytes([]byte) error
}

// Validator is implemented by argument types that can check themselves once decoded.
type Validator interface {
	Validate() error
}
