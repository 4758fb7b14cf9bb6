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
	"math/big"
	"path/filepath"
	"sync"

	"github.com/Fantom-foundation/quickrun/go/chainspec"
	"github.com/Fantom-foundation/quickrun/go/channel"
	"github.com/Fantom-foundation/quickrun/go/miner"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethdb"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/holiman/uint256"
)

const (
	ErrClientClosed        = constError("client is closed")
	ErrImportFailed        = constError("block import failed")
	ErrReceiptNotFound     = constError("receipt not found")
	ErrBlockClosed         = constError("block is closed")
	ErrTransactionRejected = constError("transaction rejected")
)

type constError string

func (e constError) Error() string {
	return string(e)
}

// Event is published on the client's channel for every imported block.
type Event struct {
	Block    *types.Block
	Receipts types.Receipts
}

// Client owns a chain database and the block chain stored in it. Blocks are
// authored through open blocks obtained from PrepareOpenBlock; closed blocks
// are queued and become part of the chain once FlushQueue is called.
type Client struct {
	config Config
	spec   *chainspec.Spec
	miner  *miner.Miner
	events *channel.Channel[Event]

	db       ethdb.Database
	chain    *core.BlockChain
	receipts *lru.Cache[common.Hash, *types.Receipt]

	mu     sync.Mutex
	queue  []sealedBlock
	closed bool
}

type sealedBlock struct {
	block    *types.Block
	receipts types.Receipts
}

// NewClient opens a chain database in the given directory, initializes it
// with the genesis of the given spec and creates a client on top of it. The
// directory must exist for the whole lifetime of the client. Events are
// published on the given channel, which may be disconnected.
func NewClient(
	config Config,
	spec *chainspec.Spec,
	path string,
	miner *miner.Miner,
	events *channel.Channel[Event],
) (*Client, error) {
	receipts, err := lru.New[common.Hash, *types.Receipt](config.ReceiptCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create receipt cache: %w", err)
	}

	db, err := rawdb.NewLevelDBDatabase(filepath.Join(path, "chaindata"), config.DatabaseCache, config.DatabaseHandles, "quickrun/db/chaindata/", false)
	if err != nil {
		return nil, fmt.Errorf("failed to open chain database: %w", err)
	}

	cacheConfig := core.DefaultCacheConfigWithScheme(config.StateScheme)
	chain, err := core.NewBlockChain(db, cacheConfig, spec.Genesis, nil, miner.Engine(), config.VMConfig, nil, nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize block chain: %w", err)
	}

	return &Client{
		config:   config,
		spec:     spec,
		miner:    miner,
		events:   events,
		db:       db,
		chain:    chain,
		receipts: receipts,
	}, nil
}

// Spec returns the chain specification the client was created for.
func (c *Client) Spec() *chainspec.Spec {
	return c.spec
}

// Miner returns the miner authoring blocks for this client.
func (c *Client) Miner() *miner.Miner {
	return c.miner
}

// Head returns the header of the latest imported block.
func (c *Client) Head() *types.Header {
	return c.chain.CurrentBlock()
}

// PendingSigner returns the signer accepted by the block following the
// current head.
func (c *Client) PendingSigner() types.Signer {
	head := c.Head()
	return c.spec.Signer(new(big.Int).Add(head.Number, common.Big1), head.Time+1)
}

// PrepareOpenBlock creates a new block on top of the current head, authored
// by the given account. The gas limit of the new block is moved towards the
// given range.
func (c *Client) PrepareOpenBlock(author common.Address, gasRange miner.GasRange, uncles []*types.Header) (*OpenBlock, error) {
	if c.isClosed() {
		return nil, ErrClientClosed
	}
	parent := c.chain.CurrentBlock()
	header, err := c.miner.PrepareHeader(c.chain, parent, author, gasRange)
	if err != nil {
		return nil, err
	}
	state, err := c.chain.StateAt(parent.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to open state of block %d: %w", parent.Number, err)
	}
	return &OpenBlock{
		client:  c,
		header:  header,
		state:   state,
		gasPool: new(core.GasPool).AddGas(header.GasLimit),
		signer:  types.MakeSigner(c.spec.ChainConfig(), header.Number, header.Time),
		uncles:  uncles,
	}, nil
}

// FlushQueue imports all blocks closed since the last flush, in the order
// they were closed, and publishes an event for each of them.
func (c *Client) FlushQueue() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClientClosed
	}
	queue := c.queue
	c.queue = nil
	c.mu.Unlock()

	for _, sealed := range queue {
		if _, err := c.chain.InsertChain(types.Blocks{sealed.block}); err != nil {
			return fmt.Errorf("%w: block %d: %w", ErrImportFailed, sealed.block.NumberU64(), err)
		}
		for _, receipt := range sealed.receipts {
			c.receipts.Add(receipt.TxHash, receipt)
		}
		c.events.Send(Event{Block: sealed.block, Receipts: sealed.receipts})
	}
	return nil
}

// QueueLength returns the number of closed blocks waiting for import.
func (c *Client) QueueLength() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

func (c *Client) enqueue(block *types.Block, receipts types.Receipts) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}
	c.queue = append(c.queue, sealedBlock{block: block, receipts: receipts})
	return nil
}

// Nonce returns the nonce of the given account at the current head.
func (c *Client) Nonce(address common.Address) (uint64, error) {
	state, err := c.headState()
	if err != nil {
		return 0, err
	}
	return state.GetNonce(address), nil
}

// Balance returns the balance of the given account at the current head.
func (c *Client) Balance(address common.Address) (*uint256.Int, error) {
	state, err := c.headState()
	if err != nil {
		return nil, err
	}
	return state.GetBalance(address), nil
}

// Code returns the code of the given account at the current head.
func (c *Client) Code(address common.Address) ([]byte, error) {
	state, err := c.headState()
	if err != nil {
		return nil, err
	}
	return state.GetCode(address), nil
}

func (c *Client) headState() (*state.StateDB, error) {
	if c.isClosed() {
		return nil, ErrClientClosed
	}
	return c.chain.StateAt(c.chain.CurrentBlock().Root)
}

// TransactionReceipt returns the receipt of an imported transaction.
func (c *Client) TransactionReceipt(hash common.Hash) (*types.Receipt, error) {
	if receipt, found := c.receipts.Get(hash); found {
		return receipt, nil
	}
	if c.isClosed() {
		return nil, ErrClientClosed
	}
	// The chain is short, a linear scan avoids depending on the transaction
	// index being written.
	for number := c.chain.CurrentBlock().Number.Uint64(); number > 0; number-- {
		block := c.chain.GetBlockByNumber(number)
		if block == nil {
			break
		}
		for i, tx := range block.Transactions() {
			if tx.Hash() != hash {
				continue
			}
			receipts := c.chain.GetReceiptsByHash(block.Hash())
			if i >= len(receipts) {
				return nil, fmt.Errorf("%w: %v", ErrReceiptNotFound, hash)
			}
			c.receipts.Add(hash, receipts[i])
			return receipts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrReceiptNotFound, hash)
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Close stops the block chain, persisting its state, and closes the
// database. Blocks still queued are dropped. The miner is not closed since it
// may be shared.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.queue = nil
	c.mu.Unlock()

	c.chain.Stop()
	return c.db.Close()
}
