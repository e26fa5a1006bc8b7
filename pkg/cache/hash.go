package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
)

// KeyVersion is part of every generated key. Bump it when a change to mesh
// building or an exporter alters bytes for inputs that were already cached.
const KeyVersion = 2

// hashKey returns "<kind>:v<KeyVersion>:<sha256 of the JSON-encoded parts>".
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":v" + strconv.Itoa(KeyVersion) + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
