package treasury

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/sha3"
)

// AddressFromPubKey encodes a secp256k1 public key as an EIP-55
// checksummed Ethereum address: keccak256 of the uncompressed point
// (without the 0x04 prefix), last 20 bytes, mixed-case hex.
func AddressFromPubKey(pub *btcec.PublicKey) string {
	uncompressed := pub.SerializeUncompressed()

	keccak := sha3.NewLegacyKeccak256()
	keccak.Write(uncompressed[1:])
	digest := keccak.Sum(nil)

	return checksumAddress(digest[12:])
}

// checksumAddress applies the EIP-55 mixed-case checksum to a raw 20-byte
// address: each hex letter is uppercased when the corresponding nibble of
// keccak256(lowercase hex address) is >= 8.
func checksumAddress(addr []byte) string {
	hexAddr := hex.EncodeToString(addr)

	keccak := sha3.NewLegacyKeccak256()
	keccak.Write([]byte(hexAddr))
	digest := keccak.Sum(nil)

	out := []byte(hexAddr)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble >= 8 {
			out[i] = c - 'a' + 'A'
		}
	}
	return "0x" + string(out)
}
