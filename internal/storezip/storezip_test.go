package storezip

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// writeTestArchive writes the given entries in order and closes the writer.
func writeTestArchive(t *testing.T, path string, entries map[string][]byte, order []string) {
	t.Helper()

	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	for _, name := range order {
		if err := w.WriteFile(name, entries[name]); err != nil {
			t.Fatalf("WriteFile(%q) failed: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	entries := map[string][]byte{
		"model.param":    []byte("7767517\n0 0\n"),
		"linear.weight":  bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 1024),
		"linear.bias":    {0, 0, 0x80, 0x3f},
		"empty.sentinel": {},
	}
	order := []string{"model.param", "linear.weight", "linear.bias", "empty.sentinel"}

	path := filepath.Join(t.TempDir(), "bundle.zip")
	writeTestArchive(t, path, entries, order)

	r, err := OpenReader(path)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer r.Close()

	for name, want := range entries {
		size, err := r.FileSize(name)
		if err != nil {
			t.Fatalf("FileSize(%q) failed: %v", name, err)
		}
		if size != len(want) {
			t.Errorf("FileSize(%q) = %d, want %d", name, size, len(want))
		}

		got := make([]byte, size)
		if err := r.ReadFile(name, got); err != nil {
			t.Fatalf("ReadFile(%q) failed: %v", name, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("ReadFile(%q) returned %d mismatched bytes", name, len(got))
		}
	}
}

func TestChecksumMatchesStdlib(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("a"),
		[]byte("hello, zip"),
		bytes.Repeat([]byte{0x00, 0xff, 0x55, 0xaa}, 333),
	}
	for _, data := range cases {
		got := Checksum(data)
		want := crc32.ChecksumIEEE(data)
		if got != want {
			t.Errorf("Checksum(%d bytes) = %#08x, want %#08x", len(data), got, want)
		}
	}
}

// TestHeaderCRCMatchesContent re-parses the raw local file header of a
// written entry and checks the recorded CRC against an independent
// computation over the same bytes.
func TestHeaderCRCMatchesContent(t *testing.T) {
	data := []byte("some weight bytes, arbitrary content \x00\x01\x02")
	path := filepath.Join(t.TempDir(), "one.zip")
	writeTestArchive(t, path, map[string][]byte{"w": data}, []string{"w"})

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read archive back: %v", err)
	}
	if got := binary.LittleEndian.Uint32(raw[0:4]); got != sigLocalFile {
		t.Fatalf("archive does not start with a local file header: %#08x", got)
	}
	recorded := binary.LittleEndian.Uint32(raw[14:18])
	if want := crc32.ChecksumIEEE(data); recorded != want {
		t.Errorf("recorded crc = %#08x, want %#08x", recorded, want)
	}
}

// TestStdlibInterop checks that archive/zip can list and read what the
// writer produced, central directory included.
func TestStdlibInterop(t *testing.T) {
	entries := map[string][]byte{
		"a.param": []byte("text"),
		"b.bin":   {1, 2, 3, 4, 5},
	}
	path := filepath.Join(t.TempDir(), "interop.zip")
	writeTestArchive(t, path, entries, []string{"a.param", "b.bin"})

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("archive/zip rejected the archive: %v", err)
	}
	defer zr.Close()

	if len(zr.File) != len(entries) {
		t.Fatalf("archive/zip sees %d entries, want %d", len(zr.File), len(entries))
	}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %q: %v", f.Name, err)
		}
		got, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read entry %q: %v", f.Name, err)
		}
		if !bytes.Equal(got, entries[f.Name]) {
			t.Errorf("entry %q content mismatch", f.Name)
		}
	}
}

func TestOpenNonArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a.zip")
	if err := os.WriteFile(path, []byte("this is not an archive at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := OpenReader(path)
	if err == nil {
		t.Fatal("OpenReader accepted a non-archive file")
	}
	if !errors.Is(err, ErrBadSignature) {
		t.Errorf("OpenReader error = %v, want ErrBadSignature", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := OpenReader(filepath.Join(t.TempDir(), "absent.zip")); err == nil {
		t.Fatal("OpenReader accepted a missing file")
	}
}

func TestReadMissingEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.zip")
	writeTestArchive(t, path, map[string][]byte{"present": {9}}, []string{"present"})

	r, err := OpenReader(path)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer r.Close()

	if _, err := r.FileSize("absent"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("FileSize(absent) error = %v, want ErrEntryNotFound", err)
	}

	// The caller's buffer must stay untouched on a failed lookup.
	buf := []byte{0xaa, 0xbb, 0xcc}
	if err := r.ReadFile("absent", buf); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("ReadFile(absent) error = %v, want ErrEntryNotFound", err)
	}
	if !bytes.Equal(buf, []byte{0xaa, 0xbb, 0xcc}) {
		t.Errorf("ReadFile(absent) modified the buffer: %v", buf)
	}
}

// buildRawEntry assembles a single local file header by hand so reject paths
// can be exercised with inputs the writer refuses to produce.
func buildRawEntry(flag, method uint16, compressedSize, uncompressedSize uint32, name string, data []byte) []byte {
	rec := make([]byte, localHeaderSize)
	binary.LittleEndian.PutUint32(rec[0:4], sigLocalFile)
	binary.LittleEndian.PutUint16(rec[6:8], flag)
	binary.LittleEndian.PutUint16(rec[8:10], method)
	binary.LittleEndian.PutUint32(rec[18:22], compressedSize)
	binary.LittleEndian.PutUint32(rec[22:26], uncompressedSize)
	binary.LittleEndian.PutUint16(rec[26:28], uint16(len(name)))
	rec = append(rec, name...)
	return append(rec, data...)
}

func TestRejectDataDescriptor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "streamed.zip")
	raw := buildRawEntry(flagDataDescriptor, methodStored, 1, 1, "x", []byte{0})
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := OpenReader(path); !errors.Is(err, ErrDataDescriptor) {
		t.Errorf("OpenReader error = %v, want ErrDataDescriptor", err)
	}
}

func TestRejectCompressedEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deflated.zip")
	raw := buildRawEntry(0, 8, 3, 10, "x", []byte{1, 2, 3})
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := OpenReader(path); !errors.Is(err, ErrUnsupportedCompression) {
		t.Errorf("OpenReader error = %v, want ErrUnsupportedCompression", err)
	}
}

func TestWriteAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "closed.zip")
	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := w.WriteFile("late", []byte{1}); err == nil {
		t.Error("WriteFile succeeded on a closed writer")
	}
}

func TestCloseReportsDirectoryWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.zip")
	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := w.WriteFile("a", []byte("x")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// Pull the file out from under the writer so the directory write fails;
	// Close must surface the error and not panic on its cleanup path.
	if err := w.file.Close(); err != nil {
		t.Fatalf("closing underlying file failed: %v", err)
	}
	if err := w.Close(); err == nil {
		t.Error("Close succeeded although the directory write failed")
	}
	// The writer stays closed afterwards.
	if err := w.Close(); err != nil {
		t.Errorf("second Close returned %v", err)
	}
}
