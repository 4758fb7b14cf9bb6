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
	"encoding/hex"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
)

// ReadBin reads a JSON object from the given reader and returns the bytes
// hex-encoded in its string member "bin". Other members are ignored.
func ReadBin(in io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read input: %w", ErrInput, err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: input is not valid JSON", ErrInput)
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: input is not a JSON object", ErrInput)
	}
	bin := root.Get("bin")
	if !bin.Exists() {
		return nil, fmt.Errorf("%w: missing member \"bin\"", ErrInput)
	}
	if bin.Type != gjson.String {
		return nil, fmt.Errorf("%w: member \"bin\" is not a string", ErrInput)
	}
	code, err := hex.DecodeString(bin.Str)
	if err != nil {
		return nil, fmt.Errorf("%w: member \"bin\" is not valid hex: %w", ErrInput, err)
	}
	return code, nil
}
