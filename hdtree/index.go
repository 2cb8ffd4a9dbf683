package hdtree

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// Domain-separation prefixes for the name hashes. Each layer chains the
// digest of the layer above it so equal names under different parents
// never produce the same index.
const (
	entityPrefix     = "ENTITY:"
	departmentPrefix = "DEPT:"
	rolePrefix       = "ROLE:"
)

// Digest is the full hash of an organizational name. It is carried along
// with the folded index because child layers hash it into their own input.
type Digest [sha256.Size]byte

func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// EntityIndex maps an entity name to a hardened derivation index.
// Deterministic and total: any string, including the empty string, yields
// a defined index in [2^31, 2^32).
func EntityIndex(entity string) (Index, Digest) {
	digest := Digest(sha256.Sum256([]byte(entityPrefix + entity)))
	return foldHardened(digest), digest
}

// DepartmentIndex maps a department name to a hardened index under the
// given entity digest.
func DepartmentIndex(entityDigest Digest, department string) (Index, Digest) {
	digest := Digest(sha256.Sum256([]byte(departmentPrefix + entityDigest.Hex() + ":" + department)))
	return foldHardened(digest), digest
}

// RoleIndex maps a role name to a hardened index under the given
// department digest.
func RoleIndex(deptDigest Digest, role string) Index {
	digest := Digest(sha256.Sum256([]byte(rolePrefix + deptDigest.Hex() + ":" + role)))
	return foldHardened(digest)
}

// foldHardened takes the first 4 digest bytes big-endian and forces the
// hardened bit. The top bit of the digest is discarded, which costs no
// entropy relevant to the 31 usable index bits.
func foldHardened(d Digest) Index {
	return Index(binary.BigEndian.Uint32(d[:4]) | hdkeychain.HardenedKeyStart)
}
