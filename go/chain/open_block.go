// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package chain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/core/types"
)

// OpenBlock is a block under construction. Transactions pushed into it are
// executed immediately against the block's private state. Once closed, the
// block is sealed and queued for import by the client that created it.
//
// An OpenBlock is not safe for concurrent use.
type OpenBlock struct {
	client   *Client
	header   *types.Header
	state    *state.StateDB
	gasPool  *core.GasPool
	signer   types.Signer
	uncles   []*types.Header
	txs      []*types.Transaction
	receipts types.Receipts
	closed   bool
}

// Header returns the header of the block as currently assembled.
func (b *OpenBlock) Header() *types.Header {
	return types.CopyHeader(b.header)
}

// Signer returns the signer transactions included in this block must match.
func (b *OpenBlock) Signer() types.Signer {
	return b.signer
}

// GasLeft returns the amount of gas still available in this block.
func (b *OpenBlock) GasLeft() uint64 {
	return b.gasPool.Gas()
}

// Transactions returns the number of transactions included so far.
func (b *OpenBlock) Transactions() int {
	return len(b.txs)
}

// PushTransaction executes the given transaction on top of the block's
// state and includes it in the block. A rejected transaction leaves the
// block unchanged. If tracer is not nil, it observes the execution.
func (b *OpenBlock) PushTransaction(tx *types.Transaction, tracer *tracing.Hooks) (*types.Receipt, error) {
	if b.closed {
		return nil, ErrBlockClosed
	}

	vmConfig := b.client.config.VMConfig
	if tracer != nil {
		vmConfig.Tracer = tracer
	}

	var (
		snapshot = b.state.Snapshot()
		gasLeft  = b.gasPool.Gas()
	)
	b.state.SetTxContext(tx.Hash(), len(b.txs))
	receipt, err := core.ApplyTransaction(
		b.client.spec.ChainConfig(),
		b.client.chain,
		&b.header.Coinbase,
		b.gasPool,
		b.state,
		b.header,
		tx,
		&b.header.GasUsed,
		vmConfig,
	)
	if err != nil {
		b.state.RevertToSnapshot(snapshot)
		b.gasPool.SetGas(gasLeft)
		return nil, fmt.Errorf("%w: %w", ErrTransactionRejected, err)
	}
	b.txs = append(b.txs, tx)
	b.receipts = append(b.receipts, receipt)
	return receipt, nil
}

// Close finalizes and seals the block and hands it to the client's import
// queue. The block is not part of the chain before the client's queue is
// flushed. No transactions can be pushed after closing.
func (b *OpenBlock) Close() (*types.Block, error) {
	if b.closed {
		return nil, ErrBlockClosed
	}
	b.closed = true

	engine := b.client.miner.Engine()
	body := &types.Body{Transactions: b.txs, Uncles: b.uncles}
	block, err := engine.FinalizeAndAssemble(b.client.chain, b.header, b.state, body, b.receipts)
	if err != nil {
		return nil, fmt.Errorf("failed to seal block %d: %w", b.header.Number, err)
	}
	if err := b.client.enqueue(block, b.receipts); err != nil {
		return nil, err
	}
	return block, nil
}
