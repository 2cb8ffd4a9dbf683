package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

const auditExportsBucket = "audit_exports"

type BoltDB struct {
	bolt *bolt.DB
}

func InitBolt(path string) (*BoltDB, error) {
	db, err := bolt.Open(filepath.Join(path, "audit.db"), 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("error setting up audit registry: %v", err)
	}

	boltdb := &BoltDB{bolt: db}
	if err := boltdb.initRegistryBuckets(); err != nil {
		return nil, fmt.Errorf("error setting up audit registry: %v", err)
	}
	return boltdb, nil
}

func (db *BoltDB) initRegistryBuckets() error {
	return db.bolt.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(auditExportsBucket))
		return err
	})
}

func (db *BoltDB) Close() error {
	return db.bolt.Close()
}

func (db *BoltDB) SaveAuditRecord(record AuditRecord) error {
	jsonRecord, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("invalid audit record: %v", err)
	}

	if err := db.bolt.Update(func(tx *bolt.Tx) error {
		exports := tx.Bucket([]byte(auditExportsBucket))
		return exports.Put([]byte(record.Key()), jsonRecord)
	}); err != nil {
		return fmt.Errorf("error saving audit record: %v", err)
	}
	return nil
}

func (db *BoltDB) GetAuditRecord(key string) *AuditRecord {
	var record *AuditRecord

	db.bolt.View(func(tx *bolt.Tx) error {
		exports := tx.Bucket([]byte(auditExportsBucket))
		recordBytes := exports.Get([]byte(key))
		if recordBytes == nil {
			return nil
		}
		if err := json.Unmarshal(recordBytes, &record); err != nil {
			record = nil
		}
		return nil
	})

	return record
}

func (db *BoltDB) GetAuditRecords() []AuditRecord {
	records := []AuditRecord{}

	db.bolt.View(func(tx *bolt.Tx) error {
		exports := tx.Bucket([]byte(auditExportsBucket))

		c := exports.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var record AuditRecord
			if err := json.Unmarshal(v, &record); err != nil {
				break
			}
			records = append(records, record)
		}
		return nil
	})

	return records
}

func (db *BoltDB) DeleteAuditRecord(key string) error {
	return db.bolt.Update(func(tx *bolt.Tx) error {
		exports := tx.Bucket([]byte(auditExportsBucket))
		return exports.Delete([]byte(key))
	})
}
