// Package storage persists public audit artifacts: exported extended
// public keys and the addresses enumerated from them. Seeds and private
// keys are never written here.
package storage

import "time"

// AuditRecord is one exported subtree: the organizational position, its
// xpub serialization and the addresses enumerated so far.
type AuditRecord struct {
	Entity     string    `json:"entity"`
	Department string    `json:"department"`
	Role       string    `json:"role,omitempty"`
	Path       string    `json:"path"`
	XPub       string    `json:"xpub"`
	Addresses  []string  `json:"addresses,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Key identifies the record within the registry.
func (r AuditRecord) Key() string {
	key := r.Entity + "/" + r.Department
	if r.Role != "" {
		key += "/" + r.Role
	}
	return key
}

type DB interface {
	SaveAuditRecord(AuditRecord) error
	GetAuditRecord(key string) *AuditRecord
	GetAuditRecords() []AuditRecord
	DeleteAuditRecord(key string) error
}
