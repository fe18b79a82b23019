package checksum

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Algorithm selects the content digest used for ledger entries. MD5 is the
// default because the ledger file follows the md5sum verification-line
// convention and must remain consumable by that tool. The choice is sticky
// per library: digests of different algorithms never compare equal.
type Algorithm string

const (
	MD5    Algorithm = "md5"
	SHA256 Algorithm = "sha256"
	BLAKE3 Algorithm = "blake3"
)

// DefaultAlgorithm keeps the ledger readable by md5sum.
const DefaultAlgorithm = MD5

func (a Algorithm) newHash() (hash.Hash, error) {
	switch a {
	case MD5:
		return md5.New(), nil
	case SHA256:
		return sha256.New(), nil
	case BLAKE3:
		return blake3.New(), nil
	}
	return nil, fmt.Errorf("unsupported checksum algorithm: %s (supported: %s, %s, %s)", a, MD5, SHA256, BLAKE3)
}

// Valid reports whether the algorithm name is one of the supported choices.
func (a Algorithm) Valid() bool {
	_, err := a.newHash()
	return err == nil
}

// File computes the hex-encoded digest of the file at path. The content is
// streamed through the hash so memory usage stays constant regardless of
// book size.
func File(path string, algo Algorithm) (string, error) {
	hasher, err := algo.newHash()
	if err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
