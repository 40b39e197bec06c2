package driver

import (
	"crypto/sha256"

	"sysyc/internal/version"
)

// Digest is a SHA-256 sum.
type Digest [32]byte

// CacheKey: H(content || emit || compiler version). A new compiler build
// never reuses output cached by an older one.
func CacheKey(content [32]byte, emit Emit) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	_, _ = h.Write([]byte{byte(emit)})
	_, _ = h.Write([]byte(version.Version))
	_, _ = h.Write([]byte(version.GitCommit))
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool {
	return d == Digest{}
}
