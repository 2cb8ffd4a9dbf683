// Package auditor is the read-only audit surface: it exports department
// and role extended public keys into a registry and enumerates account
// addresses from registered keys. The private root stays inside this
// package and is touched only during export; enumeration runs entirely in
// the public domain.
package auditor

import (
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"

	"github.com/elara-labs/treasurykit/hdtree"
	"github.com/elara-labs/treasurykit/treasury"
	"github.com/elara-labs/treasurykit/treasury/storage"
)

var ErrExportNotFound = errors.New("no export registered for key")

type Auditor struct {
	// private root extended key; never serialized, logged or handed out
	root *hdkeychain.ExtendedKey
	db   storage.DB
}

func New(root *hdkeychain.ExtendedKey, db storage.DB) *Auditor {
	return &Auditor{root: root, db: db}
}

// ExportDepartment derives the department xpub from the root and registers
// it. Re-exporting the same department is idempotent apart from the
// timestamp.
func (a *Auditor) ExportDepartment(entity, department string) (storage.AuditRecord, error) {
	xpub, err := treasury.ExportDepartmentPublicKey(a.root, entity, department)
	if err != nil {
		return storage.AuditRecord{}, err
	}

	record := storage.AuditRecord{
		Entity:     entity,
		Department: department,
		Path:       hdtree.DepartmentPath(entity, department).String(),
		XPub:       xpub.String(),
		CreatedAt:  time.Now().UTC(),
	}
	if err := a.db.SaveAuditRecord(record); err != nil {
		return storage.AuditRecord{}, err
	}
	return record, nil
}

// ExportRole registers the role-layer xpub, one level below the
// department.
func (a *Auditor) ExportRole(entity, department, role string) (storage.AuditRecord, error) {
	xpub, err := treasury.ExportRolePublicKey(a.root, entity, department, role)
	if err != nil {
		return storage.AuditRecord{}, err
	}

	record := storage.AuditRecord{
		Entity:     entity,
		Department: department,
		Role:       role,
		Path:       hdtree.RolePath(entity, department, role).String(),
		XPub:       xpub.String(),
		CreatedAt:  time.Now().UTC(),
	}
	if err := a.db.SaveAuditRecord(record); err != nil {
		return storage.AuditRecord{}, err
	}
	return record, nil
}

// Addresses enumerates count addresses from a registered export. Only the
// stored xpub is consulted; the root key plays no part here.
func (a *Auditor) Addresses(key string, count uint32) ([]string, error) {
	record := a.db.GetAuditRecord(key)
	if record == nil {
		return nil, fmt.Errorf("%w: %s", ErrExportNotFound, key)
	}

	xpub, err := hdtree.ParseExtendedKey(record.XPub)
	if err != nil {
		return nil, err
	}
	addresses, err := treasury.EnumerateAddresses(xpub, count)
	if err != nil {
		return nil, err
	}

	// keep the widest enumeration seen so far on the record
	if len(addresses) > len(record.Addresses) {
		record.Addresses = addresses
		if err := a.db.SaveAuditRecord(*record); err != nil {
			return nil, err
		}
	}
	return addresses, nil
}

// Exports lists every registered audit record.
func (a *Auditor) Exports() []storage.AuditRecord {
	return a.db.GetAuditRecords()
}
