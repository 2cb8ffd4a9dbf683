package main

import (
	"encoding/hex"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/elara-labs/treasurykit/auditor"
	"github.com/elara-labs/treasurykit/hdtree"
	"github.com/elara-labs/treasurykit/treasury"
	"github.com/elara-labs/treasurykit/treasury/storage"
)

func main() {
	godotenv.Load()

	seed, err := loadSeed()
	if err != nil {
		log.Fatalf("error loading seed: %v", err)
	}
	root, err := hdtree.NewRootKey(seed)
	if err != nil {
		log.Fatalf("error deriving root key: %v", err)
	}

	db, err := storage.InitBolt(auditPath())
	if err != nil {
		log.Fatalf("error opening audit registry: %v", err)
	}

	addr := os.Getenv("AUDIT_ADDR")
	if len(addr) == 0 {
		addr = "127.0.0.1:3390"
	}

	server := auditor.SetupAuditServer(auditor.Config{Addr: addr}, auditor.New(root, db))
	auditor.StartAuditServer(server)
}

func loadSeed() ([]byte, error) {
	if seedHex := os.Getenv("TREASURY_SEED_HEX"); len(seedHex) > 0 {
		return hex.DecodeString(seedHex)
	}
	return treasury.SeedFromMnemonic(os.Getenv("TREASURY_MNEMONIC"), os.Getenv("TREASURY_PASSPHRASE"))
}

// auditPath returns the registry directory at $HOME/.treasurykit/audit
func auditPath() string {
	homedir, err := os.UserHomeDir()
	if err != nil {
		log.Fatal(err)
	}

	path := filepath.Join(homedir, ".treasurykit", "audit")
	err = os.MkdirAll(path, 0700)
	if err != nil {
		log.Fatal(err)
	}
	return path
}
