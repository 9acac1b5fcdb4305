package utils

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Digest returns the hex-encoded BLAKE2b-256 digest of data.
//
// It is used to fingerprint persisted collections: two equal payloads
// always produce the same digest, so a writer can skip rewriting bytes that
// are already on disk, and a reader can detect a row whose value no longer
// matches its stored checksum.
//
// Example usage:
//
//	sum := utils.Digest([]byte(`[{"id":"1"}]`))
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
