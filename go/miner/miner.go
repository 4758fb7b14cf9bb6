// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package miner

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/Fantom-foundation/quickrun/go/chainspec"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/consensus"
	"github.com/ethereum/go-ethereum/consensus/misc/eip1559"
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
)

// Config summarizes the authoring parameters of a Miner.
type Config struct {
	GasFloor uint64 // lower bound targeted for the gas limit of new blocks
	GasCeil  uint64 // upper bound targeted for the gas limit of new blocks
	Extra    []byte // extra data included in authored headers
}

// DefaultConfig returns the configuration used by WithSpec.
func DefaultConfig() Config {
	return Config{
		GasFloor: params.MinGasLimit,
		GasCeil:  1_000_000,
		Extra:    []byte("quickrun"),
	}
}

// GasRange is the targeted range of the gas limit of a block.
type GasRange struct {
	Floor uint64
	Ceil  uint64
}

// Miner authors block headers on behalf of a chain client. A single Miner is
// shared between the client using it and the code that created it; Close may
// be called by any of its users, the engine is shut down only once.
type Miner struct {
	spec      *chainspec.Spec
	config    Config
	engine    consensus.Engine
	closeOnce sync.Once
	closeErr  error
}

// WithSpec creates a Miner for the given chain using the default
// configuration and the consensus engine named by the chain description.
func WithSpec(spec *chainspec.Spec) (*Miner, error) {
	return New(spec, DefaultConfig())
}

// New creates a Miner for the given chain and configuration.
func New(spec *chainspec.Spec, config Config) (*Miner, error) {
	if config.GasFloor > config.GasCeil {
		return nil, fmt.Errorf("invalid gas range: floor %d exceeds ceiling %d", config.GasFloor, config.GasCeil)
	}
	if len(config.Extra) > int(params.MaximumExtraDataSize) {
		return nil, fmt.Errorf("extra data too long: %d > %d", len(config.Extra), params.MaximumExtraDataSize)
	}
	engine, err := NewEngine(spec.Engine, spec.ChainConfig())
	if err != nil {
		return nil, err
	}
	return &Miner{
		spec:   spec,
		config: config,
		engine: engine,
	}, nil
}

// Engine returns the consensus engine used for sealing blocks.
func (m *Miner) Engine() consensus.Engine {
	return m.engine
}

// Config returns the authoring parameters of this miner.
func (m *Miner) Config() Config {
	return m.config
}

// GasRange returns the gas range of the miner's configuration.
func (m *Miner) GasRange() GasRange {
	return GasRange{Floor: m.config.GasFloor, Ceil: m.config.GasCeil}
}

// PrepareHeader creates the header of a new block on top of parent, authored
// by author. The gas limit moves from the parent's limit towards the given
// range, the difficulty is filled in by the consensus engine.
func (m *Miner) PrepareHeader(
	chain consensus.ChainHeaderReader,
	parent *types.Header,
	author common.Address,
	gasRange GasRange,
) (*types.Header, error) {
	if gasRange.Floor > gasRange.Ceil {
		return nil, fmt.Errorf("invalid gas range: floor %d exceeds ceiling %d", gasRange.Floor, gasRange.Ceil)
	}
	config := m.spec.ChainConfig()
	number := new(big.Int).Add(parent.Number, common.Big1)

	parentGasLimit := parent.GasLimit
	if config.IsLondon(number) && !config.IsLondon(parent.Number) {
		parentGasLimit *= config.ElasticityMultiplier()
	}
	gasLimit := core.CalcGasLimit(parentGasLimit, gasRange.Ceil)
	if gasLimit < gasRange.Floor {
		gasLimit = core.CalcGasLimit(parentGasLimit, gasRange.Floor)
	}

	header := &types.Header{
		ParentHash: parent.Hash(),
		Number:     number,
		GasLimit:   gasLimit,
		Time:       parent.Time + 1,
		Coinbase:   author,
		Extra:      common.CopyBytes(m.config.Extra),
	}
	if config.IsLondon(number) {
		header.BaseFee = eip1559.CalcBaseFee(config, parent)
	}
	if err := m.engine.Prepare(chain, header); err != nil {
		return nil, fmt.Errorf("failed to prepare header: %w", err)
	}
	return header, nil
}

// Close shuts down the consensus engine. Only the first call has an effect;
// later calls return the result of the first.
func (m *Miner) Close() error {
	m.closeOnce.Do(func() {
		m.closeErr = m.engine.Close()
	})
	return m.closeErr
}
