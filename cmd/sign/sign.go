package sign

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-signer/internal/config"
	"github/chapool/go-signer/internal/ethtx"
	"github/chapool/go-signer/internal/keystore"
	"github/chapool/go-signer/internal/signer"
)

const (
	aliasFlag    = "alias"
	passwordFlag = "password"
	keyFlag      = "key"
)

// New returns the sign subcommand.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign <raw-hex>",
		Short: "Signs a raw transaction with a keystore alias or an inline key",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			alias, _ := c.Flags().GetString(aliasFlag)
			password, _ := c.Flags().GetString(passwordFlag)
			keyHex, _ := c.Flags().GetString(keyFlag)

			runSign(args[0], alias, password, keyHex)
		},
	}

	cmd.Flags().String(aliasFlag, "", "keystore alias to sign with")
	cmd.Flags().String(passwordFlag, "", "keystore password")
	cmd.Flags().String(keyFlag, "", "inline private key hex (bypasses the keystore)")

	return cmd
}

func runSign(raw string, alias string, password string, keyHex string) {
	ctx := context.Background()

	if keyHex == "" {
		if alias == "" {
			log.Fatal().Msg("Either --alias or --key is required")
		}

		cfg := config.DefaultServiceConfigFromEnv()
		store, err := keystore.NewService(cfg.Keystore.Dir)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open keystore")
		}

		keyHex, err = store.Load(ctx, alias, password)
		if err != nil {
			log.Fatal().Err(err).Str("alias", alias).Msg("Failed to load key")
		}
	}

	privateKey, err := hex.DecodeString(strings.TrimPrefix(keyHex, "0x"))
	if err != nil {
		log.Fatal().Msg("Private key is not valid hex")
	}
	defer func() {
		for i := range privateKey {
			privateKey[i] = 0
		}
	}()

	tx, err := ethtx.Decode(raw)
	if err != nil {
		log.Fatal().Err(err).Str("input", raw).Msg("Failed to decode transaction")
	}

	result, err := signer.NewService().SignTransaction(ctx, tx, privateKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to sign transaction")
	}

	fmt.Printf("signed: %s\n", result.Hex)
	fmt.Printf("hash:   %s\n", result.TxHash.Hex())
}
