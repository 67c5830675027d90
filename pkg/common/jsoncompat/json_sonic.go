//go:build !jsonstd

package jsoncompat

import (
	"io"

	"github.com/bytedance/sonic"
)

// Marshal proxies to sonic unless the jsonstd build tag is present.
func Marshal(v any) ([]byte, error) { return sonic.Marshal(v) }

// Unmarshal proxies to sonic unless the jsonstd build tag is present.
func Unmarshal(data []byte, v any) error { return sonic.Unmarshal(data, v) }

func NewEncoder(w io.Writer) Encoder { return sonic.ConfigDefault.NewEncoder(w) }

func NewDecoder(r io.Reader) Decoder { return sonic.ConfigDefault.NewDecoder(r) }
