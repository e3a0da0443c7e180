package storezip

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// entryMeta records where one entry's stored bytes live in the archive file.
type entryMeta struct {
	offset int64
	size   uint32
}

// Reader serves named entries from a stored-only zip archive.
//
// Open scans the archive once, record by record, and keeps a name to
// offset/size table; reads are then served directly from the recorded
// positions without re-walking the file.
type Reader struct {
	file    *os.File
	entries map[string]entryMeta
}

// OpenReader opens the archive at path and indexes its entries.
func OpenReader(path string) (*Reader, error) {
	//nolint:gosec // G304: archive path is supplied by the caller by design.
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	r := &Reader{
		file:    file,
		entries: make(map[string]entryMeta),
	}
	if err := r.scan(); err != nil {
		_ = file.Close() // Best effort close on error
		return nil, fmt.Errorf("failed to scan archive: %w", err)
	}
	return r, nil
}

// scan walks the archive's records until end of file.
func (r *Reader) scan() error {
	var sig [4]byte
	for {
		if _, err := io.ReadFull(r.file, sig[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read record signature: %w", err)
		}

		switch signature := binary.LittleEndian.Uint32(sig[:]); signature {
		case sigLocalFile:
			if err := r.scanLocalFile(); err != nil {
				return err
			}
		case sigCentralDirectory:
			// Metadata was already captured from the local headers.
			if err := r.skipCentralEntry(); err != nil {
				return err
			}
		case sigEndOfDirectory:
			if err := r.skipEndRecord(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %#08x", ErrBadSignature, signature)
		}
	}
}

// scanLocalFile reads one local file header, records the entry's data
// position, and skips past its stored bytes.
func (r *Reader) scanLocalFile() error {
	var rec [localHeaderSize - 4]byte
	if _, err := io.ReadFull(r.file, rec[:]); err != nil {
		return fmt.Errorf("failed to read local file header: %w", err)
	}

	flag := binary.LittleEndian.Uint16(rec[2:4])
	method := binary.LittleEndian.Uint16(rec[4:6])
	compressedSize := binary.LittleEndian.Uint32(rec[14:18])
	uncompressedSize := binary.LittleEndian.Uint32(rec[18:22])
	nameLen := binary.LittleEndian.Uint16(rec[22:24])
	extraLen := binary.LittleEndian.Uint16(rec[24:26])

	if flag&flagDataDescriptor != 0 {
		return ErrDataDescriptor
	}
	if method != methodStored || compressedSize != uncompressedSize {
		return fmt.Errorf("%w: method %d, %d -> %d bytes",
			ErrUnsupportedCompression, method, compressedSize, uncompressedSize)
	}

	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r.file, name); err != nil {
		return fmt.Errorf("failed to read entry name: %w", err)
	}
	if _, err := r.file.Seek(int64(extraLen), io.SeekCurrent); err != nil {
		return fmt.Errorf("failed to skip extra field: %w", err)
	}

	offset, err := r.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("failed to record entry offset: %w", err)
	}
	r.entries[string(name)] = entryMeta{offset: offset, size: compressedSize}

	if _, err := r.file.Seek(int64(compressedSize), io.SeekCurrent); err != nil {
		return fmt.Errorf("failed to skip entry data: %w", err)
	}
	return nil
}

// skipCentralEntry skips one central directory entry and its variable fields.
func (r *Reader) skipCentralEntry() error {
	var rec [centralHeaderSize - 4]byte
	if _, err := io.ReadFull(r.file, rec[:]); err != nil {
		return fmt.Errorf("failed to read central directory entry: %w", err)
	}

	nameLen := binary.LittleEndian.Uint16(rec[24:26])
	extraLen := binary.LittleEndian.Uint16(rec[26:28])
	commentLen := binary.LittleEndian.Uint16(rec[28:30])

	skip := int64(nameLen) + int64(extraLen) + int64(commentLen)
	if _, err := r.file.Seek(skip, io.SeekCurrent); err != nil {
		return fmt.Errorf("failed to skip central directory fields: %w", err)
	}
	return nil
}

// skipEndRecord skips the end-of-central-directory record and its comment.
func (r *Reader) skipEndRecord() error {
	var rec [endRecordSize - 4]byte
	if _, err := io.ReadFull(r.file, rec[:]); err != nil {
		return fmt.Errorf("failed to read end of central directory record: %w", err)
	}

	commentLen := binary.LittleEndian.Uint16(rec[16:18])
	if _, err := r.file.Seek(int64(commentLen), io.SeekCurrent); err != nil {
		return fmt.Errorf("failed to skip archive comment: %w", err)
	}
	return nil
}

// FileSize returns the stored size in bytes of the named entry.
func (r *Reader) FileSize(name string) (int, error) {
	meta, ok := r.entries[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrEntryNotFound, name)
	}
	return int(meta.size), nil
}

// ReadFile reads the named entry into buf, which must hold at least
// FileSize(name) bytes. buf is left untouched when the entry does not exist.
func (r *Reader) ReadFile(name string, buf []byte) error {
	meta, ok := r.entries[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrEntryNotFound, name)
	}
	if len(buf) < int(meta.size) {
		return fmt.Errorf("buffer too small for entry %q: %d < %d", name, len(buf), meta.size)
	}
	if _, err := r.file.ReadAt(buf[:meta.size], meta.offset); err != nil {
		return fmt.Errorf("failed to read entry %q: %w", name, err)
	}
	return nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
