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
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"go.uber.org/mock/gomock"
)

func TestDriveBlock_RunsPhasesInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	chain := NewMockChain(ctrl)
	block := NewMockBlock(ctrl)

	author := common.Address{1}
	tx := NewContractCreation(nil, uint256.NewInt(21_000)).Unsigned(0)
	receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful, GasUsed: 21_000}

	gomock.InOrder(
		chain.EXPECT().PrepareOpenBlock(author, BlockGasRange).Return(block, nil),
		block.EXPECT().PushTransaction(tx).Return(receipt, nil),
		block.EXPECT().Close().Return(nil),
		chain.EXPECT().FlushQueue().Return(nil),
	)

	got, err := DriveBlock(chain, author, tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != receipt {
		t.Errorf("unexpected receipt, wanted %v, got %v", receipt, got)
	}
}

func TestDriveBlock_UsesFixedGasRange(t *testing.T) {
	if want, got := uint64(1), BlockGasRange.Floor; want != got {
		t.Errorf("unexpected gas floor, wanted %d, got %d", want, got)
	}
	if want, got := uint64(1_000_000), BlockGasRange.Ceil; want != got {
		t.Errorf("unexpected gas ceiling, wanted %d, got %d", want, got)
	}
}

func TestDriveBlock_FailingOpenStopsDriver(t *testing.T) {
	ctrl := gomock.NewController(t)
	chain := NewMockChain(ctrl)
	injected := errors.New("injected")

	chain.EXPECT().PrepareOpenBlock(gomock.Any(), gomock.Any()).Return(nil, injected)

	_, err := DriveBlock(chain, common.Address{}, NewContractCreation(nil, nil).Unsigned(0))
	if !errors.Is(err, ErrExecution) || !errors.Is(err, injected) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDriveBlock_FailingPushStopsDriver(t *testing.T) {
	ctrl := gomock.NewController(t)
	chain := NewMockChain(ctrl)
	block := NewMockBlock(ctrl)
	injected := errors.New("injected")

	gomock.InOrder(
		chain.EXPECT().PrepareOpenBlock(gomock.Any(), gomock.Any()).Return(block, nil),
		block.EXPECT().PushTransaction(gomock.Any()).Return(nil, injected),
	)

	_, err := DriveBlock(chain, common.Address{}, NewContractCreation(nil, nil).Unsigned(0))
	if !errors.Is(err, ErrExecution) || !errors.Is(err, injected) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDriveBlock_FailingCloseStopsDriver(t *testing.T) {
	ctrl := gomock.NewController(t)
	chain := NewMockChain(ctrl)
	block := NewMockBlock(ctrl)
	injected := errors.New("injected")

	gomock.InOrder(
		chain.EXPECT().PrepareOpenBlock(gomock.Any(), gomock.Any()).Return(block, nil),
		block.EXPECT().PushTransaction(gomock.Any()).Return(&types.Receipt{}, nil),
		block.EXPECT().Close().Return(injected),
	)

	_, err := DriveBlock(chain, common.Address{}, NewContractCreation(nil, nil).Unsigned(0))
	if !errors.Is(err, ErrExecution) || !errors.Is(err, injected) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDriveBlock_FailingFlushIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	chain := NewMockChain(ctrl)
	block := NewMockBlock(ctrl)
	injected := errors.New("injected")

	gomock.InOrder(
		chain.EXPECT().PrepareOpenBlock(gomock.Any(), gomock.Any()).Return(block, nil),
		block.EXPECT().PushTransaction(gomock.Any()).Return(&types.Receipt{}, nil),
		block.EXPECT().Close().Return(nil),
		chain.EXPECT().FlushQueue().Return(injected),
	)

	receipt, err := DriveBlock(chain, common.Address{}, NewContractCreation(nil, nil).Unsigned(0))
	if !errors.Is(err, ErrExecution) || !errors.Is(err, injected) {
		t.Errorf("unexpected error: %v", err)
	}
	if receipt != nil {
		t.Errorf("no receipt should be returned on failure")
	}
}
