package storezip

// crcTable is the reflected CRC-32 table for polynomial 0xEDB88320, the
// checksum zip entry headers carry.
var crcTable = makeCRCTable()

func makeCRCTable() [256]uint32 {
	var table [256]uint32
	for i := range table {
		c := uint32(i)
		for j := 0; j < 8; j++ {
			if c&1 != 0 {
				c = (c >> 1) ^ 0xedb88320
			} else {
				c >>= 1
			}
		}
		table[i] = c
	}
	return table
}

// Checksum computes the CRC-32 of data as recorded in entry headers: running
// value seeded with 0xFFFFFFFF, finalized by XOR with 0xFFFFFFFF.
func Checksum(data []byte) uint32 {
	x := uint32(0xffffffff)
	for _, b := range data {
		x = (x >> 8) ^ crcTable[(x^uint32(b))&0xff]
	}
	return x ^ 0xffffffff
}
