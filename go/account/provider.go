// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package account

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/subtle"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

// TestSecret is the well-known private key of the pre-funded development
// account of the built-in chain.
const TestSecret = "a100df7a048e50ed308ea696dc600215098141cb391e9527329df289f9383f65"

// ErrUnknownAccount is returned for operations on accounts never inserted.
const ErrUnknownAccount = constError("unknown account")

type constError string

func (e constError) Error() string {
	return string(e)
}

// ParseSecret decodes a hex encoded secp256k1 private key. An optional 0x
// prefix is accepted.
func ParseSecret(secret string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(secret, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid secret: %w", err)
	}
	return key, nil
}

// Provider holds private keys in memory, each guarded by a passphrase.
// Keys are locked on insertion and may only be used for signing while
// unlocked. Nothing is ever persisted.
type Provider struct {
	mu       sync.Mutex
	accounts map[common.Address]*entry
	now      func() time.Time
}

type entry struct {
	key        *ecdsa.PrivateKey
	passphrase [32]byte
	unlocked   bool
	expiry     time.Time // zero for permanent unlocks
}

// NewTransientProvider creates an empty provider.
func NewTransientProvider() *Provider {
	return &Provider{
		accounts: make(map[common.Address]*entry),
		now:      time.Now,
	}
}

// InsertAccount stores the given key under the given passphrase and returns
// the address derived from it.
func (p *Provider) InsertAccount(secret *ecdsa.PrivateKey, passphrase string) (common.Address, error) {
	address := crypto.PubkeyToAddress(secret.PublicKey)
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.accounts[address]; exists {
		return common.Address{}, fmt.Errorf("%w: %v", keystore.ErrAccountAlreadyExists, address)
	}
	p.accounts[address] = &entry{
		key:        secret,
		passphrase: hashPassphrase(passphrase),
	}
	return address, nil
}

// UnlockAccountPermanently unlocks the given account until it is locked
// explicitly.
func (p *Provider) UnlockAccountPermanently(address common.Address, passphrase string) error {
	return p.unlock(address, passphrase, 0)
}

// TimedUnlock unlocks the given account for the given duration. A
// non-positive duration unlocks the account permanently.
func (p *Provider) TimedUnlock(address common.Address, passphrase string, duration time.Duration) error {
	return p.unlock(address, passphrase, duration)
}

func (p *Provider) unlock(address common.Address, passphrase string, duration time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	account, err := p.get(address)
	if err != nil {
		return err
	}
	given := hashPassphrase(passphrase)
	if subtle.ConstantTimeCompare(given[:], account.passphrase[:]) != 1 {
		return keystore.ErrDecrypt
	}
	account.unlocked = true
	account.expiry = time.Time{}
	if duration > 0 {
		account.expiry = p.now().Add(duration)
	}
	return nil
}

// Lock locks the given account.
func (p *Provider) Lock(address common.Address) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	account, err := p.get(address)
	if err != nil {
		return err
	}
	account.unlocked = false
	account.expiry = time.Time{}
	return nil
}

// IsUnlocked reports whether the given account may currently sign.
func (p *Provider) IsUnlocked(address common.Address) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	account, err := p.get(address)
	return err == nil && p.isUnlocked(account)
}

func (p *Provider) isUnlocked(account *entry) bool {
	if !account.unlocked {
		return false
	}
	if !account.expiry.IsZero() && !p.now().Before(account.expiry) {
		account.unlocked = false
		account.expiry = time.Time{}
		return false
	}
	return true
}

// Accounts lists the addresses of all stored accounts in ascending order.
func (p *Provider) Accounts() []common.Address {
	p.mu.Lock()
	defer p.mu.Unlock()
	res := make([]common.Address, 0, len(p.accounts))
	for address := range p.accounts {
		res = append(res, address)
	}
	slices.SortFunc(res, func(a, b common.Address) int {
		return bytes.Compare(a[:], b[:])
	})
	return res
}

// HasAccount reports whether the given account is stored.
func (p *Provider) HasAccount(address common.Address) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, found := p.accounts[address]
	return found
}

// SignTx signs the given transaction with the key of the given account,
// which needs to be unlocked.
func (p *Provider) SignTx(address common.Address, tx *types.Transaction, signer types.Signer) (*types.Transaction, error) {
	p.mu.Lock()
	account, err := p.get(address)
	if err == nil && !p.isUnlocked(account) {
		err = fmt.Errorf("%w: %v", keystore.ErrLocked, address)
	}
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return types.SignTx(tx, signer, account.key)
}

func (p *Provider) get(address common.Address) (*entry, error) {
	account, found := p.accounts[address]
	if !found {
		return nil, fmt.Errorf("%w: %v", ErrUnknownAccount, address)
	}
	return account, nil
}

func hashPassphrase(passphrase string) (hash [32]byte) {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(passphrase))
	copy(hash[:], hasher.Sum(nil))
	return
}
