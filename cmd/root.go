package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"
	"github/chapool/go-signer/cmd/decode"
	"github/chapool/go-signer/cmd/env"
	"github/chapool/go-signer/cmd/server"
	"github/chapool/go-signer/cmd/sign"
	"github/chapool/go-signer/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   config.ModuleName,
	Short: "Ethereum transaction codec and signing service",
	Long: `Decodes RLP-encoded Ethereum transactions (legacy, EIP-2930,
EIP-1559), signs them with secp256k1 keys from an encrypted keystore,
and serves both operations over HTTP.
Requires configuration through ENV.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// A local .env is a development convenience; missing is fine.
		_ = gotenv.Load()

		cfg := config.DefaultServiceConfigFromEnv()
		zerolog.SetGlobalLevel(cfg.Logger.Level)
		if cfg.Logger.PrettyPrintConsole {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// attach the subcommands
	rootCmd.AddCommand(
		decode.New(),
		env.New(),
		server.New(),
		sign.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
