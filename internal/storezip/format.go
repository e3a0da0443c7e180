package storezip

// Record signatures, little-endian on the wire.
const (
	sigLocalFile        = 0x04034b50
	sigCentralDirectory = 0x02014b50
	sigEndOfDirectory   = 0x06054b50
)

// Fixed record sizes, signature included.
const (
	localHeaderSize   = 30
	centralHeaderSize = 46
	endRecordSize     = 22
)

// flagDataDescriptor is general-purpose flag bit 3: sizes and CRC follow the
// entry data instead of preceding it. Such entries cannot be indexed in a
// single forward pass.
const flagDataDescriptor = 0x0008

// methodStored is the only compression method this codec accepts.
const methodStored = 0
