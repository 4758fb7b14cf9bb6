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
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/vm"
)

// Config summarizes the tuning parameters of a Client.
type Config struct {
	DatabaseCache    int       // memory allowance of the chain database, in MiB
	DatabaseHandles  int       // number of file handles of the chain database
	StateScheme      string    // trie node storage scheme, rawdb.HashScheme or rawdb.PathScheme
	ReceiptCacheSize int       // number of receipts kept in memory for lookups
	VMConfig         vm.Config // configuration of the EVM executing transactions
}

// DefaultConfig returns a configuration suitable for short-lived chains.
func DefaultConfig() Config {
	return Config{
		DatabaseCache:    16,
		DatabaseHandles:  16,
		StateScheme:      rawdb.HashScheme,
		ReceiptCacheSize: 64,
	}
}
