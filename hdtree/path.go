package hdtree

import (
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// Index is a single derivation step. Values are only constructed through
// NewHardened / NewNonHardened (or the name hashing in index.go), so any
// Index in circulation is a valid 32-bit derivation index.
type Index uint32

// NewHardened returns the hardened index for i. i must fit in 31 bits.
func NewHardened(i uint32) (Index, error) {
	if i >= hdkeychain.HardenedKeyStart {
		return 0, ErrInvalidIndex
	}
	return Index(i | hdkeychain.HardenedKeyStart), nil
}

// NewNonHardened returns the non-hardened index for i. i must fit in 31
// bits.
func NewNonHardened(i uint32) (Index, error) {
	if i >= hdkeychain.HardenedKeyStart {
		return 0, ErrInvalidIndex
	}
	return Index(i), nil
}

func (i Index) Hardened() bool {
	return uint32(i) >= hdkeychain.HardenedKeyStart
}

// String renders the index in path notation: the 31-bit value with an
// apostrophe if hardened.
func (i Index) String() string {
	if i.Hardened() {
		return strconv.FormatUint(uint64(uint32(i)-hdkeychain.HardenedKeyStart), 10) + "'"
	}
	return strconv.FormatUint(uint64(i), 10)
}

// Path is an ordered sequence of derivation steps from a root key. A
// shorter path is an ancestor of any path sharing its prefix.
type Path []Index

// HasPrefix reports whether prefix is an ancestor of (or equal to) p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i, idx := range prefix {
		if p[i] != idx {
			return false
		}
	}
	return true
}

// String renders the path in the conventional m/44'/60'/... display form.
// This textual form is for display and audit logs only, not a wire format.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, idx := range p {
		b.WriteString("/")
		b.WriteString(idx.String())
	}
	return b.String()
}

// Extend returns a new path with idx appended, leaving p untouched.
func (p Path) Extend(idx Index) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = idx
	return out
}

// Template selects the tree layout for BuildPath. The caller states which
// policy applies; layouts are never auto-detected.
type Template int

const (
	// TemplateStandard is the default multi-entity layout:
	// m/44'/60'/entity'/dept'/account.
	TemplateStandard Template = iota

	// TemplateRoleExtended inserts a role layer and omits the BIP-44
	// purpose level: m/60'/entity'/dept'/role'/account. Not
	// interoperable with wallets expecting BIP-44.
	TemplateRoleExtended

	// TemplateSimplified drops the entity layer for single-entity
	// organizations: m/44'/60'/dept'/0/account. The fixed 0 occupies
	// the BIP-44 change position.
	TemplateSimplified
)

func (t Template) String() string {
	switch t {
	case TemplateStandard:
		return "standard"
	case TemplateRoleExtended:
		return "roleExtended"
	case TemplateSimplified:
		return "simplified"
	}
	return "unknown"
}

// OrgUnit names the organizational position a path is derived for. The
// engine never retains it past a single derivation call.
type OrgUnit struct {
	Entity     string
	Department string

	// Role is only consulted by TemplateRoleExtended.
	Role string
}

const (
	purposeBIP44 = 44
	coinTypeEth  = 60
)

var (
	purposeIndex  = mustHardened(purposeBIP44)
	coinTypeIndex = mustHardened(coinTypeEth)
)

func mustHardened(i uint32) Index {
	idx, err := NewHardened(i)
	if err != nil {
		panic(err)
	}
	return idx
}

// BuildPath maps an organizational unit onto a full account path using the
// given template. The last element is always the non-hardened account
// index; every other element is hardened.
func BuildPath(tmpl Template, unit OrgUnit, account uint32) (Path, error) {
	accountIndex, err := NewNonHardened(account)
	if err != nil {
		return nil, err
	}

	var parent Path
	switch tmpl {
	case TemplateStandard:
		parent = DepartmentPath(unit.Entity, unit.Department)
	case TemplateRoleExtended:
		parent = RolePath(unit.Entity, unit.Department, unit.Role)
	case TemplateSimplified:
		parent = SimplifiedPath(unit.Department)
	default:
		return nil, ErrUnknownTemplate
	}

	return parent.Extend(accountIndex), nil
}

// DepartmentPath returns the hardened prefix m/44'/60'/entity'/dept'
// shared by every account of the department under the standard template.
func DepartmentPath(entity, department string) Path {
	entityIndex, entityDigest := EntityIndex(entity)
	departmentIndex, _ := DepartmentIndex(entityDigest, department)
	return Path{purposeIndex, coinTypeIndex, entityIndex, departmentIndex}
}

// RolePath returns the hardened prefix m/60'/entity'/dept'/role' of the
// roleExtended template.
func RolePath(entity, department, role string) Path {
	entityIndex, entityDigest := EntityIndex(entity)
	departmentIndex, deptDigest := DepartmentIndex(entityDigest, department)
	roleIndex := RoleIndex(deptDigest, role)
	return Path{coinTypeIndex, entityIndex, departmentIndex, roleIndex}
}

// SimplifiedPath returns the prefix m/44'/60'/dept'/0 of the simplified
// template. The department hash chains the empty entity name.
func SimplifiedPath(department string) Path {
	_, entityDigest := EntityIndex("")
	departmentIndex, _ := DepartmentIndex(entityDigest, department)
	return Path{purposeIndex, coinTypeIndex, departmentIndex, Index(0)}
}
