package keystore

import (
	"context"

	"github.com/pkg/errors"
)

// ErrKeyNotFound indicates that no key is stored under the requested alias.
var ErrKeyNotFound = errors.New("key not found")

// ErrWrongPassword indicates a MAC mismatch while decrypting a keystore file.
var ErrWrongPassword = errors.New("invalid password: MAC mismatch")

// Service is the key-storage collaborator: it hands out 32-byte private keys
// by alias and never lets plaintext key material touch disk.
type Service interface {
	// Store encrypts keyHex under password and persists it as <alias>.json.
	Store(ctx context.Context, alias string, keyHex string, password string) (*Key, error)

	// Load decrypts and returns the private key hex stored under alias.
	Load(ctx context.Context, alias string, password string) (string, error)

	// List returns metadata for every stored key.
	List(ctx context.Context) ([]Key, error)

	// Delete removes the key stored under alias.
	Delete(ctx context.Context, alias string) error
}

// Key is the public metadata of a stored key.
type Key struct {
	Alias   string `json:"alias"`
	Address string `json:"address"`
}

// KeystoreJSON is the Ethereum keystore v3 JSON structure.
//
//nolint:revive // KeystoreJSON is the standard name for Ethereum keystore JSON structure
type KeystoreJSON struct {
	Version int    `json:"version"`
	ID      string `json:"id"`
	Address string `json:"address"`
	Crypto  struct {
		Ciphertext   string `json:"ciphertext"`
		CipherParams struct {
			IV string `json:"iv"`
		} `json:"cipherparams"`
		Cipher    string `json:"cipher"`
		KDF       string `json:"kdf"`
		KDFParams struct {
			DKLen int    `json:"dklen"`
			Salt  string `json:"salt"`
			N     int    `json:"n"`
			R     int    `json:"r"`
			P     int    `json:"p"`
		} `json:"kdfparams"`
		MAC string `json:"mac"`
	} `json:"crypto"`
}

// ScryptParams defines scrypt KDF parameters
type ScryptParams struct {
	DKLen int // Derived key length (32 bytes)
	Salt  []byte
	N     int // CPU/memory cost parameter
	R     int // Block size parameter
	P     int // Parallelization parameter
}

// DefaultScryptParams returns default scrypt parameters for Ethereum keystore v3
func DefaultScryptParams() *ScryptParams {
	const (
		scryptDKLen = 32
		scryptN     = 262144 // 2^18
		scryptR     = 8
		scryptP     = 1
	)

	return &ScryptParams{
		DKLen: scryptDKLen,
		N:     scryptN,
		R:     scryptR,
		P:     scryptP,
	}
}
