package project

import "crypto/sha256"

// Digest is a fixed 256-bit hash, compatible with source.File.Hash.
type Digest [32]byte

// Combine builds a cache key: H(content || extra1 || extra2 ...), used by
// internal/cache to key a resolved module's layout facts on source content
// plus CLI options that affect layout (--align, --b32/--b64).
func Combine(content Digest, extra ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range extra {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
