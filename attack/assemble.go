package attack

import "fmt"

// Assemble concatenates the plaintext of consecutive blocks, dropping the pad
// of the last one.
func Assemble(states []*BlockState) ([]byte, error) {
	var out []byte
	for k, s := range states {
		if s == nil {
			return nil, fmt.Errorf("block %d was not decoded", k+1)
		}
		if s.PadLength != 0 && k != len(states)-1 {
			return nil, fmt.Errorf("block %d has a pad but is not the final block", s.Index)
		}
		if s.PadLength < 0 || s.PadLength > len(s.Bytes) {
			return nil, fmt.Errorf("block %d has pad length %d", s.Index, s.PadLength)
		}
		out = append(out, s.Plaintext()...)
	}
	return out, nil
}
