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

//go:generate mockgen -source chain.go -destination chain_mock.go -package quickrun

import (
	"github.com/Fantom-foundation/quickrun/go/chain"
	"github.com/Fantom-foundation/quickrun/go/miner"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Chain is the part of a chain client needed to author blocks.
type Chain interface {
	// PrepareOpenBlock starts a new block on top of the current head.
	PrepareOpenBlock(author common.Address, gasRange miner.GasRange) (Block, error)
	// FlushQueue imports all closed blocks.
	FlushQueue() error
}

// Block is a block under construction.
type Block interface {
	// PushTransaction executes and includes the given transaction.
	PushTransaction(tx *types.Transaction) (*types.Receipt, error)
	// Close seals the block and queues it for import.
	Close() error
}

// NewChain adapts a chain client to the Chain interface.
func NewChain(client *chain.Client) Chain {
	return clientAdapter{client}
}

type clientAdapter struct {
	client *chain.Client
}

func (a clientAdapter) PrepareOpenBlock(author common.Address, gasRange miner.GasRange) (Block, error) {
	block, err := a.client.PrepareOpenBlock(author, gasRange, nil)
	if err != nil {
		return nil, err
	}
	return blockAdapter{block}, nil
}

func (a clientAdapter) FlushQueue() error {
	return a.client.FlushQueue()
}

type blockAdapter struct {
	block *chain.OpenBlock
}

func (a blockAdapter) PushTransaction(tx *types.Transaction) (*types.Receipt, error) {
	return a.block.PushTransaction(tx, nil)
}

func (a blockAdapter) Close() error {
	_, err := a.block.Close()
	return err
}
