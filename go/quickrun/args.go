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

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Args is the parsed command line of a run.
type Args struct {
	Data string  // the positional argument, recorded but not interpreted
	Gas  *uint64 // the --gas flag, nil if absent
}

// GasLimit returns the gas limit requested for the creation transaction.
// Without a --gas flag this is the maximum 256-bit value.
func (a Args) GasLimit() *uint256.Int {
	if a.Gas == nil {
		return new(uint256.Int).SetAllOne()
	}
	return uint256.NewInt(*a.Gas)
}

func (a Args) String() string {
	gas := "none"
	if a.Gas != nil {
		gas = fmt.Sprintf("%d", *a.Gas)
	}
	return fmt.Sprintf("Args{Data: %q, Gas: %s}", a.Data, gas)
}
