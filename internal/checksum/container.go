package checksum

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zip"
)

//local file header magic, shared by plain zips and zip-based book formats (epub, cbz, ...)
var zipSignature = []byte{'P', 'K', 0x03, 0x04}

// IsZipContainer sniffs the file content for the zip signature. Detection
// is by content, not extension, so renamed or unconventionally named
// containers are still recognized. Unreadable and too-short files are
// simply not containers.
func IsZipContainer(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	var header [4]byte
	if _, err := io.ReadFull(file, header[:]); err != nil {
		return false
	}
	return bytes.Equal(header[:], zipSignature)
}

// CheckZipStructure runs a structural integrity test on a zip container:
// the central directory must parse and every entry must decompress fully so
// that CRC mismatches and truncated payloads surface. Callers gate on
// IsZipContainer first; the check is meaningless for other files.
func CheckZipStructure(path string) error {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("container directory unreadable: %w", err)
	}
	defer reader.Close()

	for _, entry := range reader.File {
		if err := readOutEntry(entry); err != nil {
			return fmt.Errorf("container entry %s damaged: %w", entry.Name, err)
		}
	}
	return nil
}

func readOutEntry(entry *zip.File) error {
	content, err := entry.Open()
	if err != nil {
		return err
	}
	defer content.Close()
	if _, err := io.Copy(io.Discard, content); err != nil {
		return err
	}
	return nil
}
