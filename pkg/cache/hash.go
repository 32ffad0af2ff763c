package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// keyVersion is part of every generated key. Bump it when the encoding of
// cached layouts or artifacts changes so stale entries are never decoded.
const keyVersion = 1

// hashKey returns "kind:v<keyVersion>:<sha256 of the JSON-encoded parts>".
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:v%d:%s", kind, keyVersion, Hash(data))
}

// Hash returns the hex-encoded SHA-256 of data (64 characters).
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
