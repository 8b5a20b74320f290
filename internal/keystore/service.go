package keystore

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github/chapool/go-signer/internal/util"
)

var aliasPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,64}$`)

// service implements Service over a directory of keystore v3 files, one per
// alias.
type service struct {
	dir          string
	scryptParams *ScryptParams
}

// NewService creates a file-backed keystore rooted at dir.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(dir string) (Service, error) {
	return NewServiceWithParams(dir, DefaultScryptParams())
}

// NewServiceWithParams creates a keystore with custom scrypt parameters.
// Lighter parameters keep test suites fast; production uses the defaults.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewServiceWithParams(dir string, params *ScryptParams) (Service, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "failed to create keystore directory")
	}

	return &service{
		dir:          dir,
		scryptParams: params,
	}, nil
}

// Store encrypts keyHex under password and persists it as <alias>.json.
func (s *service) Store(ctx context.Context, alias string, keyHex string, password string) (*Key, error) {
	log := util.LogFromContext(ctx)

	if !aliasPattern.MatchString(alias) {
		return nil, errors.New("invalid alias")
	}

	keyBytes, err := hex.DecodeString(strings.TrimPrefix(keyHex, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "key is not valid hex")
	}
	defer zeroBytes(keyBytes)

	// Derive the address up front so listings work without the password.
	ecdsaKey, err := crypto.ToECDSA(keyBytes)
	if err != nil {
		return nil, errors.Wrap(err, "key is not a valid secp256k1 scalar")
	}
	address := crypto.PubkeyToAddress(ecdsaKey.PublicKey).Hex()

	if _, err := os.Stat(s.path(alias)); err == nil {
		return nil, errors.Errorf("alias %q already exists", alias)
	}

	keystoreJSON, err := s.encryptKey(keyBytes, password)
	if err != nil {
		log.Error().Str("alias", alias).Err(err).Msg("Failed to encrypt key")
		return nil, errors.Wrap(err, "failed to encrypt key")
	}
	keystoreJSON.Address = address

	payload, err := json.MarshalIndent(keystoreJSON, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal keystore JSON")
	}

	if err := os.WriteFile(s.path(alias), payload, 0o600); err != nil {
		log.Error().Str("alias", alias).Err(err).Msg("Failed to write keystore file")
		return nil, errors.Wrap(err, "failed to write keystore file")
	}

	return &Key{Alias: alias, Address: address}, nil
}

// Load decrypts and returns the private key hex stored under alias.
func (s *service) Load(_ context.Context, alias string, password string) (string, error) {
	if !aliasPattern.MatchString(alias) {
		return "", errors.New("invalid alias")
	}

	payload, err := os.ReadFile(s.path(alias))
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(ErrKeyNotFound, "alias %q", alias)
		}
		return "", errors.Wrap(err, "failed to read keystore file")
	}

	var keystoreJSON KeystoreJSON
	if err := json.Unmarshal(payload, &keystoreJSON); err != nil {
		return "", errors.Wrap(err, "failed to parse keystore file")
	}

	keyBytes, err := s.decryptKey(&keystoreJSON, password)
	if err != nil {
		return "", err
	}
	defer zeroBytes(keyBytes)

	return hex.EncodeToString(keyBytes), nil
}

// List returns metadata for every stored key.
func (s *service) List(_ context.Context) ([]Key, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read keystore directory")
	}

	keys := make([]Key, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		payload, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}

		var keystoreJSON KeystoreJSON
		if err := json.Unmarshal(payload, &keystoreJSON); err != nil {
			continue
		}

		keys = append(keys, Key{
			Alias:   strings.TrimSuffix(entry.Name(), ".json"),
			Address: keystoreJSON.Address,
		})
	}

	return keys, nil
}

// Delete removes the key stored under alias.
func (s *service) Delete(_ context.Context, alias string) error {
	if !aliasPattern.MatchString(alias) {
		return errors.New("invalid alias")
	}

	if err := os.Remove(s.path(alias)); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrKeyNotFound, "alias %q", alias)
		}
		return errors.Wrap(err, "failed to remove keystore file")
	}

	return nil
}

func (s *service) path(alias string) string {
	return filepath.Join(s.dir, alias+".json")
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
