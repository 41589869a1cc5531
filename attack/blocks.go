package attack

// A Block is one cipher block. Block 0 of a ciphertext is the IV.
type Block []byte

// Split cuts ciphertext into blocks of blockSize. The blocks share one private
// copy of ciphertext, so the caller may reuse its buffer.
func Split(ciphertext []byte, blockSize int) ([]Block, error) {
	l := len(ciphertext)
	if blockSize <= 0 || l%blockSize != 0 || l < 2*blockSize {
		return nil, &InvalidLengthError{Length: l, BlockSize: blockSize}
	}

	c := make([]byte, l)
	copy(c, ciphertext)

	blocks := make([]Block, 0, l/blockSize)
	for i := 0; i < l; i += blockSize {
		blocks = append(blocks, Block(c[i:i+blockSize:i+blockSize]))
	}
	return blocks, nil
}

// pair is the input of one decoding run: the target block, the block in front
// of it, and every block before that.
type pair struct {
	index  int
	prefix []byte
	prev   Block
	curr   Block
	final  bool
}

func pairAt(blocks []Block, index int) pair {
	var prefix []byte
	for _, b := range blocks[:index-1] {
		prefix = append(prefix, b...)
	}

	return pair{
		index:  index,
		prefix: prefix,
		prev:   blocks[index-1],
		curr:   blocks[index],
		final:  index == len(blocks)-1,
	}
}
