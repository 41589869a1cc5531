package attack

import (
	"bytes"
	"errors"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		length     int
		blockSize  int
		wantBlocks int
		wantErr    bool
	}{
		{name: "iv and one block", length: 32, blockSize: 16, wantBlocks: 2},
		{name: "iv and four blocks", length: 80, blockSize: 16, wantBlocks: 5},
		{name: "small blocks", length: 9, blockSize: 3, wantBlocks: 3},
		{name: "iv only", length: 16, blockSize: 16, wantErr: true},
		{name: "ragged", length: 33, blockSize: 16, wantErr: true},
		{name: "empty", length: 0, blockSize: 16, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := make([]byte, test.length)
			for i := range c {
				c[i] = byte(i)
			}

			blocks, err := Split(c, test.blockSize)
			if test.wantErr {
				var le *InvalidLengthError
				if !errors.As(err, &le) {
					t.Fatalf("expected an InvalidLengthError, got %v", err)
				}
				if le.Length != test.length || le.BlockSize != test.blockSize {
					t.Errorf("error fields = %d/%d, want %d/%d", le.Length, le.BlockSize, test.length, test.blockSize)
				}
				return
			}
			if err != nil {
				t.Fatalf("Split: %s", err)
			}
			if len(blocks) != test.wantBlocks {
				t.Fatalf("got %d blocks, want %d", len(blocks), test.wantBlocks)
			}
			for k, b := range blocks {
				if want := c[k*test.blockSize : (k+1)*test.blockSize]; !bytes.Equal(b, want) {
					t.Errorf("block %d = %v, want %v", k, b, want)
				}
			}
		})
	}
}

func TestSplitCopiesInput(t *testing.T) {
	c := make([]byte, 32)
	blocks, err := Split(c, 16)
	if err != nil {
		t.Fatal(err)
	}

	c[0] = 0xff
	if blocks[0][0] != 0 {
		t.Errorf("block shares memory with the input")
	}

	// appending to one block must not run into the next
	_ = append(blocks[0], 0xee)
	if blocks[1][0] != 0 {
		t.Errorf("append on block 0 overwrote block 1")
	}
}

func TestPairAt(t *testing.T) {
	c := bytes.Repeat([]byte{0}, 4*4)
	for k := range c {
		c[k] = byte(k / 4)
	}
	blocks, err := Split(c, 4)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		index      int
		wantPrefix []byte
		wantFinal  bool
	}{
		{index: 1, wantPrefix: nil},
		{index: 2, wantPrefix: []byte{0, 0, 0, 0}},
		{index: 3, wantPrefix: []byte{0, 0, 0, 0, 1, 1, 1, 1}, wantFinal: true},
	}

	for _, test := range tests {
		p := pairAt(blocks, test.index)
		if !bytes.Equal(p.prefix, test.wantPrefix) {
			t.Errorf("pairAt(%d).prefix = %v, want %v", test.index, p.prefix, test.wantPrefix)
		}
		if p.final != test.wantFinal {
			t.Errorf("pairAt(%d).final = %v, want %v", test.index, p.final, test.wantFinal)
		}
		if p.prev[0] != byte(test.index-1) || p.curr[0] != byte(test.index) {
			t.Errorf("pairAt(%d) picked blocks %d and %d", test.index, p.prev[0], p.curr[0])
		}
	}
}
