// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package chainspec

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
)

// DefaultEngine is the consensus engine used by specs not naming one.
const DefaultEngine = "ethash"

const ErrInvalidSpec = constError("invalid chain specification")

type constError string

func (e constError) Error() string {
	return string(e)
}

// defaultSpec is a single-account Frontier chain. The only funded account is
// the one derived from the quickrun test secret; it starts with nonce 1.
//
//go:embed chain.json
var defaultSpec []byte

// Spec describes the genesis state and consensus parameters of a chain. A
// Spec is immutable after loading and may be shared between components.
type Spec struct {
	Name    string        `json:"name"`
	Engine  string        `json:"engine"`
	Genesis *core.Genesis `json:"genesis"`
}

// Load decodes a chain specification from its JSON representation.
func Load(blob []byte) (*Spec, error) {
	spec := &Spec{}
	if err := json.Unmarshal(blob, spec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}
	if spec.Genesis == nil {
		return nil, fmt.Errorf("%w: missing genesis", ErrInvalidSpec)
	}
	if spec.Genesis.Config == nil {
		return nil, fmt.Errorf("%w: missing chain config", ErrInvalidSpec)
	}
	if err := spec.Genesis.Config.CheckConfigForkOrder(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}
	if spec.Engine == "" {
		spec.Engine = DefaultEngine
	}
	return spec, nil
}

// Default loads the chain specification compiled into the binary.
func Default() (*Spec, error) {
	return Load(defaultSpec)
}

// ChainConfig returns the fork configuration of the chain.
func (s *Spec) ChainConfig() *params.ChainConfig {
	return s.Genesis.Config
}

// GenesisBlock assembles the genesis block without writing it anywhere.
func (s *Spec) GenesisBlock() *types.Block {
	return s.Genesis.ToBlock()
}

// Signer returns the transaction signer matching the replay protection
// rules active for a block with the given number and timestamp.
func (s *Spec) Signer(number *big.Int, time uint64) types.Signer {
	return types.MakeSigner(s.Genesis.Config, number, time)
}

func (s *Spec) String() string {
	return fmt.Sprintf("%s (engine: %s, chain id: %v)", s.Name, s.Engine, s.Genesis.Config.ChainID)
}
