package judge

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// CacheKey computes the content address of a judged answer: a hex-encoded
// SHA-256 over the value, the question, the provider type, and the model.
// Each field is length-prefixed so distinct input tuples cannot collide by
// shifting bytes between fields.
//
// The value passed here is the canonical serialization of the judged value,
// so structurally equal values produce the same key regardless of source.
func CacheKey(value, question, providerType, model string) string {
	h := sha256.New()
	var length [8]byte
	for _, field := range []string{value, question, providerType, model} {
		binary.BigEndian.PutUint64(length[:], uint64(len(field)))
		h.Write(length[:])
		h.Write([]byte(field))
	}
	return hex.EncodeToString(h.Sum(nil))
}
