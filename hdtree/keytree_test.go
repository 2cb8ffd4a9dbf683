package hdtree

import (
	"encoding/hex"
	"errors"
	"testing"
)

// BIP32 test vector 1, which any hdkeychain-compatible wire encoding must
// reproduce byte for byte.
func TestRootKeyVectors(t *testing.T) {
	seed, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")

	root, err := NewRootKey(seed)
	if err != nil {
		t.Fatalf("NewRootKey: %v", err)
	}

	wantRoot := "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3oJDaNDcThY2Rc5nQSyFA9Z6dLMECVbb4D2jM8mKDoicvXzgcz6vJ8fCMRgvz4B9qKT2jBbZ4an8vW4t"
	if root.String() != wantRoot {
		t.Fatalf("root xprv = %s, expected %s", root.String(), wantRoot)
	}

	hardenedZero, err := NewHardened(0)
	if err != nil {
		t.Fatal(err)
	}
	child, err := Derive(root, Path{hardenedZero})
	if err != nil {
		t.Fatalf("Derive(m/0'): %v", err)
	}

	wantChild := "xprv9uHRZZhk6KAJC1avXpDAp4MDc3sQKNxDiPvvkX8Br5ngLNv1TxvUxt4cV1rGL5hj6KCesnDYUhd7oWgT11eZG7XnxHrnYeSvkzY7d2bhkJ7"
	if child.String() != wantChild {
		t.Fatalf("m/0' xprv = %s, expected %s", child.String(), wantChild)
	}

	neutered, err := child.Neuter()
	if err != nil {
		t.Fatal(err)
	}
	wantPub := "xpub68Gmy5EdvgibQVfPdqkBBCHxA5htiqg55crXYuXoQRKfDBFA1WEjWgP6LHhwBZeNK1VTsfTFUHCdrfp1bgwQ9xv5ski8PX9rL2dZXvgGDnw"
	if neutered.String() != wantPub {
		t.Fatalf("m/0' xpub = %s, expected %s", neutered.String(), wantPub)
	}
}

func TestDeriveDeterminism(t *testing.T) {
	seed, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	root, err := NewRootKey(seed)
	if err != nil {
		t.Fatal(err)
	}

	path, err := BuildPath(TemplateStandard, OrgUnit{Entity: "GroupA", Department: "Finance"}, 0)
	if err != nil {
		t.Fatal(err)
	}

	first, err := Derive(root, path)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	second, err := Derive(root, path)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if first.String() != second.String() {
		t.Fatal("identical inputs derived different keys")
	}

	// the root must be untouched by the walk
	if !root.IsPrivate() || root.Depth() != 0 {
		t.Fatal("Derive mutated the root key")
	}
}

func TestHardenedFromPublic(t *testing.T) {
	seed, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	root, err := NewRootKey(seed)
	if err != nil {
		t.Fatal(err)
	}
	pubRoot, err := root.Neuter()
	if err != nil {
		t.Fatal(err)
	}

	hardened, _ := NewHardened(44)
	nonHardened, _ := NewNonHardened(0)

	tests := []Path{
		{hardened},
		{nonHardened, hardened},
		DepartmentPath("GroupA", "Finance"),
	}
	for _, path := range tests {
		if _, err := Derive(pubRoot, path); !errors.Is(err, ErrHardenedFromPublic) {
			t.Fatalf("Derive(public, %s) = %v, expected ErrHardenedFromPublic", path, err)
		}
	}

	// non-hardened walks stay available in the public domain
	if _, err := Derive(pubRoot, Path{nonHardened}); err != nil {
		t.Fatalf("non-hardened derive from public key failed: %v", err)
	}
}

func TestDeriveErrors(t *testing.T) {
	if _, err := NewRootKey([]byte{0x01, 0x02}); !errors.Is(err, ErrInvalidSeed) {
		t.Fatalf("short seed = %v, expected ErrInvalidSeed", err)
	}

	seed, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	root, err := NewRootKey(seed)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Derive(root, nil); !errors.Is(err, ErrEmptyPath) {
		t.Fatalf("empty path = %v, expected ErrEmptyPath", err)
	}
}

func TestExtendedKeyRoundTrip(t *testing.T) {
	seed, _ := hex.DecodeString("fffcf9f6f3f0edeae7e4e1dedbd8d5d2cfccc9c6c3c0bdbab7b4b1aeaba8a5a29f9c999693908d8a8784817e7b7875726f6c696663605d5a5754514e4b484542")
	root, err := NewRootKey(seed)
	if err != nil {
		t.Fatal(err)
	}

	leaf, err := Derive(root, DepartmentPath("GroupA", "Finance"))
	if err != nil {
		t.Fatal(err)
	}
	pubLeaf, err := leaf.Neuter()
	if err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{leaf.String(), pubLeaf.String()} {
		parsed, err := ParseExtendedKey(key)
		if err != nil {
			t.Fatalf("ParseExtendedKey: %v", err)
		}
		if parsed.String() != key {
			t.Fatalf("round trip changed key: %s != %s", parsed.String(), key)
		}
	}

	if _, err := ParseExtendedKey("xpub-definitely-not-a-key"); err == nil {
		t.Fatal("expected error parsing malformed extended key")
	}
}
