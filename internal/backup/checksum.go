package backup

import (
	"fmt"
	"hash/fnv"

	"github.com/cespare/xxhash/v2"
)

// Hasher computes the export checksum. The checksum detects accidental
// corruption only; it is not tamper-resistant and must not be upgraded to a
// cryptographic hash without changing the export contract. Any
// implementation must be deterministic over the UTF-8 bytes it is given.
type Hasher interface {
	// Name identifies the algorithm inside export metadata.
	Name() string
	// Sum returns the hex digest of data.
	Sum(data []byte) string
}

// XXHash is the default checksum, xxHash64.
type XXHash struct{}

func (XXHash) Name() string { return "xxhash64" }

func (XXHash) Sum(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// FNV1a is a stdlib-only fallback, FNV-1a 64-bit. Kept so exports remain
// verifiable by tooling that cannot carry the xxhash dependency.
type FNV1a struct{}

func (FNV1a) Name() string { return "fnv1a64" }

func (FNV1a) Sum(data []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(data)
	return fmt.Sprintf("%016x", h.Sum64())
}

// hasherByName resolves the algorithm recorded in export metadata, so an
// import is verified with the hash that produced it. Unknown names resolve
// to nil.
func hasherByName(name string) Hasher {
	switch name {
	case "", XXHash{}.Name():
		return XXHash{}
	case FNV1a{}.Name():
		return FNV1a{}
	default:
		return nil
	}
}
