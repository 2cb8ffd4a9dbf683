// Package treasury composes the hdtree derivation core into the two
// institutional surfaces: account generation from a private root and
// audit export/enumeration over public keys only.
package treasury

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/elara-labs/treasurykit/hdtree"
)

// Account is the terminal artifact of a derivation: the path it lives at,
// its private key and its on-chain address. The engine never persists,
// transmits or logs any of it; the private key belongs to the caller the
// moment this struct is returned.
type Account struct {
	Path       hdtree.Path
	PrivateKey *secp256k1.PrivateKey
	Address    string
}

// GenerateAccount derives the account-th account of a department using the
// standard m/44'/60'/entity'/dept'/account layout. Identical inputs against
// the same root always produce byte-identical keys and addresses; varying
// only the account index yields siblings under the same department node.
func GenerateAccount(root *hdkeychain.ExtendedKey, entity, department string, account uint32) (*Account, error) {
	unit := hdtree.OrgUnit{Entity: entity, Department: department}
	path, err := hdtree.BuildPath(hdtree.TemplateStandard, unit, account)
	if err != nil {
		return nil, err
	}
	return deriveAccount(root, path)
}

// GenerateRoleAccount derives an account within a role layer under the
// department, using the roleExtended layout m/60'/entity'/dept'/role'/account.
func GenerateRoleAccount(root *hdkeychain.ExtendedKey, entity, department, role string, account uint32) (*Account, error) {
	unit := hdtree.OrgUnit{Entity: entity, Department: department, Role: role}
	path, err := hdtree.BuildPath(hdtree.TemplateRoleExtended, unit, account)
	if err != nil {
		return nil, err
	}
	return deriveAccount(root, path)
}

// GenerateSimplifiedAccount derives an account for single-entity
// organizations using the m/44'/60'/dept'/0/account layout.
func GenerateSimplifiedAccount(root *hdkeychain.ExtendedKey, department string, account uint32) (*Account, error) {
	unit := hdtree.OrgUnit{Department: department}
	path, err := hdtree.BuildPath(hdtree.TemplateSimplified, unit, account)
	if err != nil {
		return nil, err
	}
	return deriveAccount(root, path)
}

func deriveAccount(root *hdkeychain.ExtendedKey, path hdtree.Path) (*Account, error) {
	leaf, err := hdtree.Derive(root, path)
	if err != nil {
		return nil, err
	}

	privKey, err := leaf.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("extracting account key: %v", err)
	}

	return &Account{
		Path:       path,
		PrivateKey: privKey,
		Address:    AddressFromPubKey(privKey.PubKey()),
	}, nil
}
