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

import "errors"

// ConstError is an error type that can be used to define immutable
// error constants.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}

const (
	// ErrUsage is reported for malformed command lines.
	ErrUsage = ConstError("usage error")
	// ErrInput is reported for unreadable or malformed input on stdin.
	ErrInput = ConstError("input error")
	// ErrBootstrap is reported if the throw-away chain can not be set up.
	ErrBootstrap = ConstError("bootstrap error")
	// ErrKey is reported for failures provisioning or using the test account.
	ErrKey = ConstError("key error")
	// ErrExecution is reported if the transaction can not be included in a
	// block or the block can not be imported.
	ErrExecution = ConstError("execution error")
)

// ExitCode returns the process exit status for the given run result.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		return 2
	case errors.Is(err, ErrInput):
		return 3
	case errors.Is(err, ErrBootstrap):
		return 4
	case errors.Is(err, ErrKey):
		return 5
	case errors.Is(err, ErrExecution):
		return 6
	default:
		return 1
	}
}
