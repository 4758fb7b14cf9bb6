// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package quickrun

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

// Action distinguishes contract creations from message calls.
type Action int

const (
	Create Action = iota
	Call
)

func (a Action) String() string {
	switch a {
	case Create:
		return "create"
	case Call:
		return "call"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Transaction summarizes the parameters of an unsigned transaction.
type Transaction struct {
	Action   Action         // the kind of transaction
	To       common.Address // the receiver of a call, ignored for creations
	Nonce    uint64         // the nonce of the sender account
	Data     []byte         // init code for creations, input for calls
	Value    *uint256.Int   // the amount of network currency to transfer
	Gas      *uint256.Int   // the gas limit, saturated on signing if beyond 64 bits
	GasPrice *uint256.Int   // the price of a unit of gas
}

const (
	creationNonce    = 1
	creationGasPrice = 1
)

// NewContractCreation returns the creation transaction deploying the given
// code with the given gas limit. Value is zero, nonce and gas price are one.
func NewContractCreation(code []byte, gas *uint256.Int) Transaction {
	return Transaction{
		Action:   Create,
		Nonce:    creationNonce,
		Data:     code,
		Value:    new(uint256.Int),
		Gas:      gas,
		GasPrice: uint256.NewInt(creationGasPrice),
	}
}

// Unsigned converts the transaction into a legacy go-ethereum transaction.
// Gas limits that do not fit into 64 bits are replaced by gasCap.
func (t Transaction) Unsigned(gasCap uint64) *types.Transaction {
	tx := &types.LegacyTx{
		Nonce:    t.Nonce,
		GasPrice: toBig(t.GasPrice),
		Gas:      saturateGas(t.Gas, gasCap),
		Value:    toBig(t.Value),
		Data:     common.CopyBytes(t.Data),
	}
	if t.Action == Call {
		to := t.To
		tx.To = &to
	}
	return types.NewTx(tx)
}

// Sign signs the transaction with the given key.
func (t Transaction) Sign(secret *ecdsa.PrivateKey, signer types.Signer, gasCap uint64) (*types.Transaction, error) {
	signed, err := types.SignTx(t.Unsigned(gasCap), signer, secret)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to sign transaction: %w", ErrKey, err)
	}
	return signed, nil
}

// BuildAndSign creates and signs the creation transaction for the given code.
func BuildAndSign(code []byte, gas *uint256.Int, signer types.Signer, secret *ecdsa.PrivateKey, gasCap uint64) (*types.Transaction, error) {
	return NewContractCreation(code, gas).Sign(secret, signer, gasCap)
}

func saturateGas(gas *uint256.Int, gasCap uint64) uint64 {
	if gas == nil || !gas.IsUint64() {
		return gasCap
	}
	return gas.Uint64()
}

func toBig(value *uint256.Int) *big.Int {
	if value == nil {
		return new(big.Int)
	}
	return value.ToBig()
}
