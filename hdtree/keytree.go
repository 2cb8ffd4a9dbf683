// Package hdtree maps organizational names onto a hardened BIP32 key tree.
// It owns the hash-to-index mapping, the path layout templates and the
// child key derivation walk; everything above it composes these pieces.
package hdtree

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

var (
	ErrInvalidSeed        = errors.New("invalid seed")
	ErrInvalidIndex       = errors.New("derivation index out of range")
	ErrEmptyPath          = errors.New("empty derivation path")
	ErrUnknownTemplate    = errors.New("unknown path template")
	ErrHardenedFromPublic = errors.New("hardened derivation requires a private extended key")

	// ErrPrimitive wraps failures reported by the underlying curve
	// primitive (e.g. an unusable child scalar). Astronomically rare
	// but defined, never undefined behavior.
	ErrPrimitive = errors.New("key derivation primitive failure")
)

// NewRootKey converts seed bytes (typically bip39 mnemonic output) into
// the private root extended key of a tree. The root is an immutable value;
// callers thread it explicitly through every derivation so multiple
// independent trees can coexist in one process.
func NewRootKey(seed []byte) (*hdkeychain.ExtendedKey, error) {
	root, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		if errors.Is(err, hdkeychain.ErrInvalidSeedLen) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrPrimitive, err)
	}
	return root, nil
}

// Derive walks path from root, one child key derivation step per element,
// and returns the extended key at the end of the walk. The root is not
// mutated; every step produces a fresh key.
//
// Hardened steps are only defined from a private extended key. Requesting
// one while holding a public-only key fails with ErrHardenedFromPublic —
// this is the mechanism that enforces audit isolation, and callers should
// treat it as a structural violation rather than a retryable condition.
func Derive(root *hdkeychain.ExtendedKey, path Path) (*hdkeychain.ExtendedKey, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}

	key := root
	for _, idx := range path {
		if idx.Hardened() && !key.IsPrivate() {
			return nil, ErrHardenedFromPublic
		}
		child, err := key.Derive(uint32(idx))
		if err != nil {
			return nil, fmt.Errorf("%w: derive %s: %v", ErrPrimitive, idx, err)
		}
		key = child
	}
	return key, nil
}

// ParseExtendedKey decodes a base58 xprv/xpub serialization. Together with
// ExtendedKey.String it must round-trip losslessly, which is what external
// wallets and audit tooling rely on for interchange.
func ParseExtendedKey(s string) (*hdkeychain.ExtendedKey, error) {
	key, err := hdkeychain.NewKeyFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid extended key: %v", err)
	}
	return key, nil
}
