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
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var testAccount = common.HexToAddress("0x5b073e9233944b5e729e46d618f0d8edf3d9c34a")

func TestSpec_DefaultCanBeLoaded(t *testing.T) {
	spec, err := Default()
	if err != nil {
		t.Fatalf("failed to load default spec: %v", err)
	}
	if want, got := "quickrun", spec.Name; want != got {
		t.Errorf("unexpected name, wanted %q, got %q", want, got)
	}
	if want, got := "ethash", spec.Engine; want != got {
		t.Errorf("unexpected engine, wanted %q, got %q", want, got)
	}
	if want, got := uint64(1_000_000), spec.Genesis.GasLimit; want != got {
		t.Errorf("unexpected genesis gas limit, wanted %d, got %d", want, got)
	}
	if spec.ChainConfig().Ethash == nil {
		t.Errorf("default spec should be configured for ethash")
	}
}

func TestSpec_DefaultFundsTestAccountWithNonceOne(t *testing.T) {
	spec, err := Default()
	if err != nil {
		t.Fatalf("failed to load default spec: %v", err)
	}
	account, found := spec.Genesis.Alloc[testAccount]
	if !found {
		t.Fatalf("test account %v not allocated in genesis", testAccount)
	}
	if want, got := uint64(1), account.Nonce; want != got {
		t.Errorf("unexpected nonce, wanted %d, got %d", want, got)
	}
	if account.Balance == nil || account.Balance.Sign() <= 0 {
		t.Errorf("test account should have a positive balance, got %v", account.Balance)
	}
}

func TestSpec_DefaultUsesFrontierRules(t *testing.T) {
	spec, err := Default()
	if err != nil {
		t.Fatalf("failed to load default spec: %v", err)
	}
	if spec.ChainConfig().IsHomestead(big.NewInt(1)) {
		t.Errorf("default spec should not enable homestead")
	}
	signer := spec.Signer(big.NewInt(1), 1)
	if !signer.Equal(types.FrontierSigner{}) {
		t.Errorf("unexpected signer, wanted frontier signer, got %T", signer)
	}
}

func TestSpec_GenesisBlockIsBlockZero(t *testing.T) {
	spec, err := Default()
	if err != nil {
		t.Fatalf("failed to load default spec: %v", err)
	}
	block := spec.GenesisBlock()
	if block.NumberU64() != 0 {
		t.Errorf("unexpected genesis number %d", block.NumberU64())
	}
	if block.Root() == (common.Hash{}) {
		t.Errorf("genesis state root should not be empty")
	}
}

func TestSpec_LoadDefaultsEngineName(t *testing.T) {
	spec, err := Load([]byte(`{"name":"x","genesis":{"config":{"chainId":1},"gasLimit":"0x1000","difficulty":"0x1","alloc":{}}}`))
	if err != nil {
		t.Fatalf("failed to load spec: %v", err)
	}
	if want, got := DefaultEngine, spec.Engine; want != got {
		t.Errorf("unexpected engine, wanted %q, got %q", want, got)
	}
}

func TestSpec_LoadRejectsInvalidInput(t *testing.T) {
	tests := map[string]string{
		"empty":          ``,
		"not json":       `this is not json`,
		"no genesis":     `{"name":"x"}`,
		"no config":      `{"name":"x","genesis":{"gasLimit":"0x1000","difficulty":"0x1","alloc":{}}}`,
		"bad fork order": `{"name":"x","genesis":{"config":{"chainId":1,"byzantiumBlock":0},"gasLimit":"0x1000","difficulty":"0x1","alloc":{}}}`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load([]byte(input))
			if !errors.Is(err, ErrInvalidSpec) {
				t.Errorf("unexpected error, wanted %v, got %v", ErrInvalidSpec, err)
			}
		})
	}
}
