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
	"io"
	"os"

	"github.com/Fantom-foundation/quickrun/go/account"
	"github.com/Fantom-foundation/quickrun/go/chain"
	"github.com/Fantom-foundation/quickrun/go/chainspec"
	"github.com/Fantom-foundation/quickrun/go/channel"
	"github.com/Fantom-foundation/quickrun/go/logger"
	"github.com/Fantom-foundation/quickrun/go/miner"
	"github.com/davecgh/go-spew/spew"
	"github.com/dsnet/golib/unitconv"
	"github.com/ethereum/go-ethereum/core/types"
)

var log = logger.NewLogger("quickrun")

var receiptPrinter = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Run deploys the bytecode read from stdin on a fresh chain living in a
// temporary directory. The parsed arguments, the address of the deploying
// account and the receipt of the deployment are written to stdout. The chain
// is discarded before Run returns.
func Run(args Args, stdin io.Reader, stdout io.Writer) error {
	fmt.Fprintln(stdout, args)

	code, err := ReadBin(stdin)
	if err != nil {
		return err
	}
	log.Debugf("read %d bytes of init code", len(code))

	spec, err := chainspec.Default()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBootstrap, err)
	}
	dir, err := os.MkdirTemp("", "quickrun-")
	if err != nil {
		return fmt.Errorf("%w: failed to create chain directory: %w", ErrBootstrap, err)
	}
	defer os.RemoveAll(dir)

	m, err := miner.WithSpec(spec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBootstrap, err)
	}
	defer m.Close()

	client, err := chain.NewClient(chain.DefaultConfig(), spec, dir, m, channel.Disconnected[chain.Event]())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBootstrap, err)
	}
	defer client.Close()
	log.Infof("chain %s initialized in %s", spec.Name, dir)

	provider := account.NewTransientProvider()
	secret, err := account.ParseSecret(account.TestSecret)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKey, err)
	}
	author, err := provider.InsertAccount(secret, "")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKey, err)
	}
	if err := provider.UnlockAccountPermanently(author, ""); err != nil {
		return fmt.Errorf("%w: %w", ErrKey, err)
	}
	fmt.Fprintln(stdout, author.Hex())

	tx := NewContractCreation(code, args.GasLimit())
	signed, err := provider.SignTx(author, tx.Unsigned(m.Config().GasCeil), client.PendingSigner())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKey, err)
	}
	log.Infof("deploying %d bytes of code with a gas limit of %s", len(code), formatGas(signed.Gas()))

	receipt, err := DriveBlock(NewChain(client), author, signed)
	if err != nil {
		return err
	}
	log.Infof("transaction %v used %s gas", receipt.TxHash, formatGas(receipt.GasUsed))

	printReceipt(stdout, receipt)
	return nil
}

func printReceipt(out io.Writer, receipt *types.Receipt) {
	receiptPrinter.Fdump(out, receipt)
}

func formatGas(gas uint64) string {
	return unitconv.FormatPrefix(float64(gas), unitconv.SI, 0)
}
