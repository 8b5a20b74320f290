package transactions

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github/chapool/go-signer/internal/api/httperrors"
	"github/chapool/go-signer/internal/ethtx"
)

// TransactionResponse is the display form of a decoded transaction. All
// integer fields are decimal strings to avoid precision loss in clients.
type TransactionResponse struct {
	Type                 string              `json:"type"`
	ChainID              string              `json:"chainId"`
	NetworkName          string              `json:"networkName"`
	Nonce                string              `json:"nonce"`
	GasLimit             string              `json:"gasLimit"`
	GasPrice             string              `json:"gasPrice,omitempty"`
	MaxFeePerGas         string              `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas string              `json:"maxPriorityFeePerGas,omitempty"`
	To                   string              `json:"to,omitempty"`
	IsContractCreation   bool                `json:"isContractCreation"`
	Value                string              `json:"value"`
	ValueFormatted       string              `json:"valueFormatted"`
	Data                 string              `json:"data,omitempty"`
	AccessList           []AccessListEntry   `json:"accessList,omitempty"`
	EstimatedFee         string              `json:"estimatedFee"`
}

// AccessListEntry mirrors one access-list tuple.
type AccessListEntry struct {
	Address     string   `json:"address"`
	StorageKeys []string `json:"storageKeys"`
}

func newTransactionResponse(tx *ethtx.Transaction) *TransactionResponse {
	res := &TransactionResponse{
		Type:               tx.Type.String(),
		ChainID:            bigString(tx.ChainID),
		NetworkName:        tx.NetworkName(),
		Nonce:              bigString(tx.Nonce),
		GasLimit:           bigString(tx.GasLimit),
		IsContractCreation: tx.IsContractCreation(),
		Value:              bigString(tx.Value),
		ValueFormatted:     tx.FormattedValue(),
		EstimatedFee:       tx.FormattedFee(),
	}

	if tx.Type == ethtx.TypeDynamicFee {
		res.MaxFeePerGas = bigString(tx.MaxFeePerGas)
		res.MaxPriorityFeePerGas = bigString(tx.MaxPriorityFeePerGas)
	} else {
		res.GasPrice = bigString(tx.GasPrice)
	}

	if tx.To != nil {
		res.To = tx.To.Hex()
	}
	if len(tx.Data) > 0 {
		res.Data = hexutil.Encode(tx.Data)
	}

	for _, tuple := range tx.AccessList {
		entry := AccessListEntry{Address: tuple.Address.Hex(), StorageKeys: []string{}}
		for _, key := range tuple.StorageKeys {
			entry.StorageKeys = append(entry.StorageKeys, key.Hex())
		}
		res.AccessList = append(res.AccessList, entry)
	}

	return res
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

// errorKind labels failures for metrics, reusing the public error type names.
func errorKind(err error) string {
	if httpErr := httperrors.FromTaxonomy(err, ""); httpErr != nil {
		return httpErr.Type
	}
	return httperrors.TypeGeneric
}
