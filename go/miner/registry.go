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
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/consensus"
	"github.com/ethereum/go-ethereum/consensus/beacon"
	"github.com/ethereum/go-ethereum/consensus/ethash"
	"github.com/ethereum/go-ethereum/params"
	"golang.org/x/exp/maps"
)

// This file provides a registry for consensus engines. Chain specifications
// name the engine sealing their blocks; the name is resolved here. Engines
// offered by this package are registered during package initialization.

func init() {
	mustRegister("ethash", newFakeEthash)
	mustRegister("ethash-full-faker", newFullFakeEthash)
	mustRegister("beacon-ethash", newBeaconEthash)
}

// EngineFactory is the type of a function creating a consensus engine for a
// chain with the given configuration.
type EngineFactory func(config *params.ChainConfig) (consensus.Engine, error)

// NewEngine performs a lookup for the given name (case-insensitive) in the
// registry and creates a new engine for the given chain configuration. An
// error is returned if no factory was registered under the given name.
func NewEngine(name string, config *params.ChainConfig) (consensus.Engine, error) {
	factory := GetEngineFactory(name)
	if factory == nil {
		return nil, fmt.Errorf("consensus engine not found: %s, use one of: %v", name, maps.Keys(GetAllRegisteredEngineFactories()))
	}
	return factory(config)
}

// GetEngineFactory performs a lookup for the given name (case-insensitive)
// in the registry. The result is nil if no factory was registered under the
// given name.
func GetEngineFactory(name string) EngineFactory {
	engineRegistryLock.Lock()
	defer engineRegistryLock.Unlock()
	return engineRegistry[strings.ToLower(name)]
}

// GetAllRegisteredEngineFactories obtains all registered factories.
func GetAllRegisteredEngineFactories() map[string]EngineFactory {
	engineRegistryLock.Lock()
	defer engineRegistryLock.Unlock()
	return maps.Clone(engineRegistry)
}

// RegisterEngineFactory registers a new consensus engine under the given
// name. The name is not case-sensitive. An error is returned if a factory was
// bound to the same name before, or the factory is nil.
func RegisterEngineFactory(name string, factory EngineFactory) error {
	key := strings.ToLower(name)
	if factory == nil {
		return fmt.Errorf("invalid initialization: cannot register nil-factory using `%s`", key)
	}
	engineRegistryLock.Lock()
	defer engineRegistryLock.Unlock()
	if _, found := engineRegistry[key]; found {
		return fmt.Errorf("invalid initialization: multiple factories registered for `%s`", key)
	}
	engineRegistry[key] = factory
	return nil
}

func mustRegister(name string, factory EngineFactory) {
	if err := RegisterEngineFactory(name, factory); err != nil {
		panic(err)
	}
}

// engineRegistry is a global registry for consensus engine factories.
var engineRegistry = map[string]EngineFactory{}

// engineRegistryLock to protect access to the registry.
var engineRegistryLock sync.Mutex

func requireEthash(config *params.ChainConfig) error {
	if config == nil || config.Ethash == nil {
		return fmt.Errorf("chain config has no ethash section")
	}
	return nil
}

// newFakeEthash creates an ethash engine accepting all seals; headers are
// still checked for consistency with their parents.
func newFakeEthash(config *params.ChainConfig) (consensus.Engine, error) {
	if err := requireEthash(config); err != nil {
		return nil, err
	}
	return ethash.NewFaker(), nil
}

// newFullFakeEthash creates an ethash engine skipping all header checks.
func newFullFakeEthash(config *params.ChainConfig) (consensus.Engine, error) {
	if err := requireEthash(config); err != nil {
		return nil, err
	}
	return ethash.NewFullFaker(), nil
}

func newBeaconEthash(config *params.ChainConfig) (consensus.Engine, error) {
	if err := requireEthash(config); err != nil {
		return nil, err
	}
	return beacon.New(ethash.NewFaker()), nil
}
