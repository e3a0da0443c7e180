package storezip

import "errors"

// Common errors.
var (
	ErrEntryNotFound          = errors.New("no such entry in archive")
	ErrDataDescriptor         = errors.New("archive uses data descriptors (streaming entries not supported)")
	ErrUnsupportedCompression = errors.New("archive entry is not stored uncompressed")
	ErrBadSignature           = errors.New("unsupported record signature")
)
