package lineio

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Charset looks up an encoding by IANA/WHATWG label, e.g. "utf-8",
// "latin1", "shift_jis".
func Charset(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q; %w", name, err)
	}
	return enc, nil
}
