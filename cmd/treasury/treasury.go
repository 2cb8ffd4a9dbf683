package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/elara-labs/treasurykit/hdtree"
	"github.com/elara-labs/treasurykit/treasury"
)

var root *hdkeychain.ExtendedKey

func treasuryPath() string {
	homedir, err := os.UserHomeDir()
	if err != nil {
		log.Fatal(err)
	}

	path := filepath.Join(homedir, ".treasurykit")
	err = os.MkdirAll(path, 0700)
	if err != nil {
		log.Fatal(err)
	}
	return path
}

// loadRoot builds the private root key from the environment: either
// TREASURY_SEED_HEX (raw seed bytes) or TREASURY_MNEMONIC with optional
// TREASURY_PASSPHRASE.
func loadRoot(ctx *cli.Context) error {
	envPath := filepath.Join(treasuryPath(), ".env")
	if _, err := os.Stat(envPath); err != nil {
		envPath = ".env"
	}
	godotenv.Load(envPath)

	seedHex := os.Getenv("TREASURY_SEED_HEX")
	mnemonic := os.Getenv("TREASURY_MNEMONIC")

	var seed []byte
	switch {
	case len(seedHex) > 0:
		var err error
		seed, err = hex.DecodeString(seedHex)
		if err != nil {
			printErr(errors.New("TREASURY_SEED_HEX is not valid hex"))
		}
	case len(mnemonic) > 0:
		var err error
		seed, err = treasury.SeedFromMnemonic(mnemonic, os.Getenv("TREASURY_PASSPHRASE"))
		if err != nil {
			printErr(err)
		}
	default:
		printErr(errors.New("set TREASURY_SEED_HEX or TREASURY_MNEMONIC"))
	}

	var err error
	root, err = hdtree.NewRootKey(seed)
	if err != nil {
		printErr(err)
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:  "treasury",
		Usage: "deterministic org-tree key derivation",
		Commands: []*cli.Command{
			mnemonicCmd,
			accountCmd,
			exportCmd,
			addressesCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

var mnemonicCmd = &cli.Command{
	Name:   "mnemonic",
	Usage:  "generate a fresh root mnemonic",
	Action: newMnemonic,
}

func newMnemonic(ctx *cli.Context) error {
	mnemonic, err := treasury.NewMnemonic()
	if err != nil {
		printErr(err)
	}
	fmt.Println(mnemonic)
	return nil
}

const (
	roleFlag       = "role"
	simplifiedFlag = "simplified"
	showKeyFlag    = "show-private-key"
)

var accountCmd = &cli.Command{
	Name:      "account",
	Usage:     "derive an account for entity/department",
	ArgsUsage: "<entity> <department> [index]",
	Before:    loadRoot,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  roleFlag,
			Usage: "derive under a role layer (roleExtended layout)",
		},
		&cli.BoolFlag{
			Name:  simplifiedFlag,
			Usage: "use the single-entity simplified layout",
		},
		&cli.BoolFlag{
			Name:  showKeyFlag,
			Usage: "print the private key hex (handle with care)",
		},
	},
	Action: deriveAccount,
}

func deriveAccount(ctx *cli.Context) error {
	args := ctx.Args()
	if args.Len() < 2 {
		printErr(errors.New("specify an entity and a department"))
	}
	entity, department := args.Get(0), args.Get(1)

	var index uint64
	if args.Len() > 2 {
		var err error
		index, err = strconv.ParseUint(args.Get(2), 10, 32)
		if err != nil {
			printErr(errors.New("invalid account index"))
		}
	}

	var account *treasury.Account
	var err error
	switch {
	case ctx.IsSet(roleFlag):
		account, err = treasury.GenerateRoleAccount(root, entity, department, ctx.String(roleFlag), uint32(index))
	case ctx.Bool(simplifiedFlag):
		account, err = treasury.GenerateSimplifiedAccount(root, department, uint32(index))
	default:
		account, err = treasury.GenerateAccount(root, entity, department, uint32(index))
	}
	if err != nil {
		printErr(err)
	}

	fmt.Printf("path: %s\n", account.Path)
	fmt.Printf("address: %s\n", account.Address)
	if ctx.Bool(showKeyFlag) {
		fmt.Printf("private key: %s\n", hex.EncodeToString(account.PrivateKey.Serialize()))
	}
	return nil
}

var exportCmd = &cli.Command{
	Name:      "export-xpub",
	Usage:     "export a department (or role) extended public key for audit",
	ArgsUsage: "<entity> <department>",
	Before:    loadRoot,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  roleFlag,
			Usage: "export the role layer below the department",
		},
	},
	Action: exportXPub,
}

func exportXPub(ctx *cli.Context) error {
	args := ctx.Args()
	if args.Len() < 2 {
		printErr(errors.New("specify an entity and a department"))
	}
	entity, department := args.Get(0), args.Get(1)

	var xpub *hdkeychain.ExtendedKey
	var err error
	if ctx.IsSet(roleFlag) {
		xpub, err = treasury.ExportRolePublicKey(root, entity, department, ctx.String(roleFlag))
	} else {
		xpub, err = treasury.ExportDepartmentPublicKey(root, entity, department)
	}
	if err != nil {
		printErr(err)
	}

	fmt.Println(xpub.String())
	return nil
}

const countFlag = "count"

var addressesCmd = &cli.Command{
	Name:      "addresses",
	Usage:     "enumerate account addresses from an exported xpub",
	ArgsUsage: "<xpub>",
	Flags: []cli.Flag{
		&cli.UintFlag{
			Name:  countFlag,
			Usage: "number of addresses to enumerate",
			Value: 10,
		},
	},
	Action: enumerateAddresses,
}

func enumerateAddresses(ctx *cli.Context) error {
	args := ctx.Args()
	if args.Len() < 1 {
		printErr(errors.New("extended public key not provided"))
	}

	xpub, err := hdtree.ParseExtendedKey(args.First())
	if err != nil {
		printErr(err)
	}

	addresses, err := treasury.EnumerateAddresses(xpub, uint32(ctx.Uint(countFlag)))
	if err != nil {
		printErr(err)
	}
	for i, addr := range addresses {
		fmt.Printf("%d: %s\n", i, addr)
	}
	return nil
}

func printErr(msg error) {
	fmt.Println(msg.Error())
	os.Exit(1)
}
