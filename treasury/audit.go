package treasury

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"

	"github.com/elara-labs/treasurykit/hdtree"
)

// ExportDepartmentPublicKey derives the department node from the private
// root and returns its public variant. Hardened layers above the account
// level mean an auditor holding this key can enumerate every account
// address under the department but can reach neither the department's
// private key nor any sibling department's keys.
func ExportDepartmentPublicKey(root *hdkeychain.ExtendedKey, entity, department string) (*hdkeychain.ExtendedKey, error) {
	return exportPublic(root, hdtree.DepartmentPath(entity, department))
}

// ExportRolePublicKey exports the role node of the roleExtended layout,
// one level below the department.
func ExportRolePublicKey(root *hdkeychain.ExtendedKey, entity, department, role string) (*hdkeychain.ExtendedKey, error) {
	return exportPublic(root, hdtree.RolePath(entity, department, role))
}

func exportPublic(root *hdkeychain.ExtendedKey, path hdtree.Path) (*hdkeychain.ExtendedKey, error) {
	node, err := hdtree.Derive(root, path)
	if err != nil {
		return nil, err
	}
	// strip the private material before the key crosses this boundary;
	// chain code and public point survive the neutering
	pub, err := node.Neuter()
	if err != nil {
		return nil, fmt.Errorf("neutering %s: %v", path, err)
	}
	return pub, nil
}

// EnumerateAddresses walks count sequential non-hardened children of the
// supplied extended key and returns their addresses in index order. The
// walk happens entirely in the public domain: the input is neutered before
// the first step, so private material can never leak through this path
// even if a caller hands over a private key by mistake.
func EnumerateAddresses(key *hdkeychain.ExtendedKey, count uint32) ([]string, error) {
	pub, err := key.Neuter()
	if err != nil {
		return nil, fmt.Errorf("neutering enumeration root: %v", err)
	}

	addresses := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		idx, err := hdtree.NewNonHardened(i)
		if err != nil {
			return nil, err
		}
		child, err := hdtree.Derive(pub, hdtree.Path{idx})
		if err != nil {
			return nil, err
		}
		childPub, err := child.ECPubKey()
		if err != nil {
			return nil, fmt.Errorf("extracting public key at index %d: %v", i, err)
		}
		addresses = append(addresses, AddressFromPubKey(childPub))
	}
	return addresses, nil
}
