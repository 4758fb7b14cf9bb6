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
	"fmt"

	"github.com/Fantom-foundation/quickrun/go/miner"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// BlockGasRange is the gas limit range targeted by the single authored block.
var BlockGasRange = miner.GasRange{Floor: 1, Ceil: 1_000_000}

// DriveBlock authors a block containing the given transaction and imports it
// into the chain. The receipt is the one produced when the transaction was
// pushed into the block. Any failure aborts the block.
func DriveBlock(chain Chain, author common.Address, tx *types.Transaction) (*types.Receipt, error) {
	block, err := chain.PrepareOpenBlock(author, BlockGasRange)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open block: %w", ErrExecution, err)
	}
	receipt, err := block.PushTransaction(tx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to push transaction %v: %w", ErrExecution, tx.Hash(), err)
	}
	if err := block.Close(); err != nil {
		return nil, fmt.Errorf("%w: failed to close block: %w", ErrExecution, err)
	}
	if err := chain.FlushQueue(); err != nil {
		return nil, fmt.Errorf("%w: failed to import block: %w", ErrExecution, err)
	}
	return receipt, nil
}
