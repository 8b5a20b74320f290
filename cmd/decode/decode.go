package decode

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-signer/internal/ethtx"
	"github/chapool/go-signer/internal/units"
)

// New returns the decode subcommand.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <raw-hex>",
		Short: "Decodes a raw transaction and prints its fields",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			runDecode(args[0])
		},
	}
}

func runDecode(raw string) {
	tx, err := ethtx.Decode(raw)
	if err != nil {
		log.Fatal().Err(err).Str("input", raw).Msg("Failed to decode transaction")
	}

	fmt.Printf("type:       %s\n", tx.Type)
	fmt.Printf("network:    %s\n", tx.NetworkName())
	fmt.Printf("nonce:      %s\n", tx.Nonce)
	fmt.Printf("gas limit:  %s\n", tx.GasLimit)

	if tx.Type == ethtx.TypeDynamicFee {
		fmt.Printf("max fee:            %s\n", units.FormatGwei(tx.MaxFeePerGas))
		fmt.Printf("max priority fee:   %s\n", units.FormatGwei(tx.MaxPriorityFeePerGas))
	} else {
		fmt.Printf("gas price:  %s\n", units.FormatGwei(tx.GasPrice))
	}

	if tx.IsContractCreation() {
		fmt.Println("to:         (contract creation)")
	} else {
		fmt.Printf("to:         %s\n", tx.To.Hex())
	}

	fmt.Printf("value:      %s\n", tx.FormattedValue())
	fmt.Printf("est. fee:   %s\n", tx.FormattedFee())

	if len(tx.Data) > 0 {
		fmt.Printf("data:       %s\n", hexutil.Encode(tx.Data))
	}

	for _, tuple := range tx.AccessList {
		fmt.Printf("access:     %s (%d storage keys)\n", tuple.Address.Hex(), len(tuple.StorageKeys))
	}
}
