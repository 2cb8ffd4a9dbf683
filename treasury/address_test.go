package treasury

import (
	"encoding/hex"
	"strings"
	"testing"
)

// EIP-55 reference vectors.
func TestChecksumAddress(t *testing.T) {
	vectors := []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
	}

	for _, want := range vectors {
		raw, err := hex.DecodeString(strings.ToLower(want[2:]))
		if err != nil {
			t.Fatal(err)
		}
		if got := checksumAddress(raw); got != want {
			t.Fatalf("checksumAddress = %s, expected %s", got, want)
		}
	}
}

func TestAddressFromPubKey(t *testing.T) {
	root := newTestRoot(t)

	account, err := GenerateAccount(root, "GroupA", "Finance", 0)
	if err != nil {
		t.Fatal(err)
	}

	addr := account.Address
	if !strings.HasPrefix(addr, "0x") || len(addr) != 42 {
		t.Fatalf("malformed address %q", addr)
	}
	// checksum encoding is idempotent over its own lowercase form
	raw, err := hex.DecodeString(strings.ToLower(addr[2:]))
	if err != nil {
		t.Fatal(err)
	}
	if checksumAddress(raw) != addr {
		t.Fatalf("address %s does not satisfy its own checksum", addr)
	}
}
