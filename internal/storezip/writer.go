package storezip

import (
	"encoding/binary"
	"fmt"
	"os"
)

// writtenEntry is the metadata Close replays into the central directory.
type writtenEntry struct {
	name        string
	headerStart int64
	crc         uint32
	size        uint32
}

// Writer writes a stored-only zip archive in a single streaming pass.
//
// WriteFile emits each entry's local header and raw bytes immediately; only
// one entry's metadata is retained in memory. Close appends one central
// directory entry per written file followed by the end record, so the total
// archive size never needs to be known in advance.
type Writer struct {
	file    *os.File
	offset  int64
	entries []writtenEntry
	closed  bool
}

// NewWriter creates the archive file at path, truncating any existing file.
func NewWriter(path string) (*Writer, error) {
	//nolint:gosec // G304: archive path is supplied by the caller by design.
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}
	return &Writer{file: file}, nil
}

// WriteFile appends one stored entry holding data under the given name.
func (w *Writer) WriteFile(name string, data []byte) error {
	if w.closed {
		return fmt.Errorf("writer is closed")
	}

	crc := Checksum(data)
	headerStart := w.offset

	rec := make([]byte, localHeaderSize)
	binary.LittleEndian.PutUint32(rec[0:4], sigLocalFile)
	// Version, flags, method, time and date stay zero.
	binary.LittleEndian.PutUint32(rec[14:18], crc)
	binary.LittleEndian.PutUint32(rec[18:22], uint32(len(data)))
	binary.LittleEndian.PutUint32(rec[22:26], uint32(len(data)))
	binary.LittleEndian.PutUint16(rec[26:28], uint16(len(name)))
	// Extra field length stays zero.

	if err := w.write(rec); err != nil {
		return fmt.Errorf("failed to write local file header: %w", err)
	}
	if err := w.write([]byte(name)); err != nil {
		return fmt.Errorf("failed to write entry name: %w", err)
	}
	if err := w.write(data); err != nil {
		return fmt.Errorf("failed to write entry data for %q: %w", name, err)
	}

	w.entries = append(w.entries, writtenEntry{
		name:        name,
		headerStart: headerStart,
		crc:         crc,
		size:        uint32(len(data)),
	})
	return nil
}

// Close writes the central directory and end record, then closes the file.
// The file is closed even when a directory write fails.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.writeDirectory(); err != nil {
		_ = w.file.Close() // Best effort close on error
		return err
	}
	return w.file.Close()
}

// writeDirectory appends the central directory and the end record.
func (w *Writer) writeDirectory() error {
	dirStart := w.offset
	for _, e := range w.entries {
		rec := make([]byte, centralHeaderSize)
		binary.LittleEndian.PutUint32(rec[0:4], sigCentralDirectory)
		// Version fields, flags, method and timestamps stay zero.
		binary.LittleEndian.PutUint32(rec[16:20], e.crc)
		binary.LittleEndian.PutUint32(rec[20:24], e.size)
		binary.LittleEndian.PutUint32(rec[24:28], e.size)
		binary.LittleEndian.PutUint16(rec[28:30], uint16(len(e.name)))
		// Extra, comment, disk and attribute fields stay zero.
		binary.LittleEndian.PutUint32(rec[42:46], uint32(e.headerStart))

		if err := w.write(rec); err != nil {
			return fmt.Errorf("failed to write central directory entry: %w", err)
		}
		if err := w.write([]byte(e.name)); err != nil {
			return fmt.Errorf("failed to write central directory name: %w", err)
		}
	}
	dirEnd := w.offset

	rec := make([]byte, endRecordSize)
	binary.LittleEndian.PutUint32(rec[0:4], sigEndOfDirectory)
	// Disk numbers stay zero.
	binary.LittleEndian.PutUint16(rec[8:10], uint16(len(w.entries)))
	binary.LittleEndian.PutUint16(rec[10:12], uint16(len(w.entries)))
	binary.LittleEndian.PutUint32(rec[12:16], uint32(dirEnd-dirStart))
	binary.LittleEndian.PutUint32(rec[16:20], uint32(dirStart))
	// Comment length stays zero.

	if err := w.write(rec); err != nil {
		return fmt.Errorf("failed to write end of central directory record: %w", err)
	}
	return nil
}

func (w *Writer) write(p []byte) error {
	n, err := w.file.Write(p)
	w.offset += int64(n)
	return err
}
