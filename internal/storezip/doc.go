// Package storezip reads and writes the stored-only zip container used by
// pnnx model bundles.
//
// The format is a strict subset of the zip specification: every entry is
// stored uncompressed (method 0), entry metadata is written twice (a local
// file header in front of the bytes, a central directory entry at the end of
// the archive), and streaming entries with deferred sizes are rejected. The
// reader builds its lookup table from the local file headers alone, so it can
// serve archives whose central directory was written by other tools.
package storezip
