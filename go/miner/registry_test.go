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
	"slices"
	"testing"

	"github.com/ethereum/go-ethereum/consensus"
	"github.com/ethereum/go-ethereum/params"
	"golang.org/x/exp/maps"
)

func TestEngineRegistry_DefaultEnginesAreRegistered(t *testing.T) {
	factories := maps.Keys(GetAllRegisteredEngineFactories())
	for _, name := range []string{"ethash", "ethash-full-faker", "beacon-ethash"} {
		if !slices.Contains(factories, name) {
			t.Errorf("%v not found in list of factories, found %v", name, factories)
		}
	}
}

func TestEngineRegistry_LookupIsCaseInsensitive(t *testing.T) {
	if GetEngineFactory("EtHaSh") == nil {
		t.Errorf("expected factory for mixed case name")
	}
}

func TestEngineRegistry_RegisteredFactoryIsUsedByNewEngine(t *testing.T) {
	counter := 0
	name := "test1"
	err := RegisterEngineFactory(name, func(*params.ChainConfig) (consensus.Engine, error) {
		counter++
		return nil, nil
	})
	if err != nil {
		t.Fatalf("failed to register factory: %v", err)
	}

	if _, err := NewEngine(name, nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if counter != 1 {
		t.Errorf("expected factory to be called once, got %d", counter)
	}
}

func TestEngineRegistry_NewEngineFailsForUnknownName(t *testing.T) {
	if _, err := NewEngine("something odd", params.TestChainConfig); err == nil {
		t.Errorf("expected error for unknown engine")
	}
}

func TestEngineRegistry_FailToRegisterNilFactory(t *testing.T) {
	if err := RegisterEngineFactory("nil", nil); err == nil {
		t.Errorf("expected error when registering nil factory")
	}
}

func TestEngineRegistry_FailToRegisterSameNameMultipleTimes(t *testing.T) {
	name := "test2"
	factory := func(*params.ChainConfig) (consensus.Engine, error) { return nil, nil }

	if err := RegisterEngineFactory(name, factory); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := RegisterEngineFactory(name, factory); err == nil {
		t.Errorf("expected error on second registration")
	}
}

func TestEngineRegistry_EthashEnginesRequireEthashConfig(t *testing.T) {
	config := &params.ChainConfig{}
	for _, name := range []string{"ethash", "ethash-full-faker", "beacon-ethash"} {
		if _, err := NewEngine(name, config); err == nil {
			t.Errorf("expected %s to reject config without ethash section", name)
		}
		engine, err := NewEngine(name, params.TestChainConfig)
		if err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
		if engine == nil {
			t.Errorf("factory of %s produced nil engine", name)
		}
	}
}
