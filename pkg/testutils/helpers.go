package testutils

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// CreateTestFilesWithContent creates test files with specific content
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// WriteFile writes content to dir/name and returns the full path.
func WriteFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

// SetModTime stamps path with the given modification time.
func SetModTime(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

// Snapshot records every entry under root with its mode, size and
// modification time, so tests can assert a tree was left untouched.
func Snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	entries := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		info, err := os.Lstat(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		entries[rel] = fmt.Sprintf("%s %d %d", info.Mode(), info.Size(), info.ModTime().UnixNano())
		return nil
	})
	require.NoError(t, err)
	return entries
}

// TIFF field types used by the fixture builder.
const (
	TypeASCII = 2
	TypeShort = 3
	TypeLong  = 4
)

const (
	tagExifIFDPointer   = 0x8769
	tagDateTimeOriginal = 0x9003
)

// ExifTIFF returns a minimal little-endian TIFF blob whose Exif sub-IFD holds
// DateTimeOriginal = value (NUL terminated, as cameras write it).
func ExifTIFF(value string) []byte {
	return ExifTIFFRaw(TypeASCII, uint32(len(value)+1), append([]byte(value), 0))
}

// ExifTIFFRaw is ExifTIFF with full control over the DateTimeOriginal entry.
func ExifTIFFRaw(fieldType uint16, count uint32, data []byte) []byte {
	le := binary.LittleEndian
	var buf bytes.Buffer

	// header: byte order, magic, offset of IFD0
	buf.WriteString("II")
	_ = binary.Write(&buf, le, uint16(42))
	_ = binary.Write(&buf, le, uint32(8))

	const ifdSize = 2 + 12 + 4
	exifIFD := uint32(8 + ifdSize)
	dataOffset := exifIFD + ifdSize

	// IFD0: one entry pointing at the Exif sub-IFD
	_ = binary.Write(&buf, le, uint16(1))
	writeEntry(&buf, tagExifIFDPointer, TypeLong, 1, le.AppendUint32(nil, exifIFD))
	_ = binary.Write(&buf, le, uint32(0))

	// Exif IFD: DateTimeOriginal
	_ = binary.Write(&buf, le, uint16(1))
	if len(data) <= 4 {
		writeEntry(&buf, tagDateTimeOriginal, fieldType, count, data)
	} else {
		writeEntry(&buf, tagDateTimeOriginal, fieldType, count, le.AppendUint32(nil, dataOffset))
	}
	_ = binary.Write(&buf, le, uint32(0))

	if len(data) > 4 {
		buf.Write(data)
	}
	return buf.Bytes()
}

// TIFFWithoutExif returns a valid TIFF header with an empty IFD0.
func TIFFWithoutExif() []byte {
	le := binary.LittleEndian
	var buf bytes.Buffer
	buf.WriteString("II")
	_ = binary.Write(&buf, le, uint16(42))
	_ = binary.Write(&buf, le, uint32(8))
	_ = binary.Write(&buf, le, uint16(0))
	_ = binary.Write(&buf, le, uint32(0))
	return buf.Bytes()
}

func writeEntry(buf *bytes.Buffer, tag, fieldType uint16, count uint32, value []byte) {
	le := binary.LittleEndian
	_ = binary.Write(buf, le, tag)
	_ = binary.Write(buf, le, fieldType)
	_ = binary.Write(buf, le, count)
	inline := make([]byte, 4)
	copy(inline, value)
	buf.Write(inline)
}
