package feed

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// digestDomain prefixes every document hash. The version suffix leaves
// room for changing the encoding later.
const digestDomain = "feedstore/feed/v1"

// Digest returns a content hash of the document: SHA-256 over the domain,
// a NUL separator and the document's JSON encoding. Struct fields encode
// in declaration order, so equal documents hash equally. Normalize first
// for the hash to ignore Unicode composition differences.
func (d *Document) Digest() (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(digestDomain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
