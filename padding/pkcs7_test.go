package padding

import (
	"bytes"
	"errors"
	"testing"
)

func TestPad(t *testing.T) {
	cases := []struct {
		buf       []byte
		blockSize int
		want      []byte
	}{
		{[]byte{0}, 3, []byte{0, 2, 2}},
		{[]byte{0, 0}, 3, []byte{0, 0, 1}},
		{[]byte{0, 0, 0}, 3, []byte{0, 0, 0, 3, 3, 3}},
		{[]byte("HELLOWORLD"), 16, append([]byte("HELLOWORLD"), bytes.Repeat([]byte{6}, 6)...)},
	}
	for _, c := range cases {
		if got := Pad(c.buf, c.blockSize); !bytes.Equal(got, c.want) {
			t.Errorf("Pad(%v, %v) == %v, want %v", c.buf, c.blockSize, got, c.want)
		}
	}
}

func TestPadDoesNotAlias(t *testing.T) {
	buf := make([]byte, 2, 16)
	Pad(buf, 4)
	if got := buf[:4]; !bytes.Equal(got, []byte{0, 0, 0, 0}) {
		t.Errorf("Pad wrote into the caller's backing array: %v", got)
	}
}

func TestUnpad(t *testing.T) {
	cases := []struct {
		buf       []byte
		blockSize int
		want      []byte
		err       error
	}{
		{[]byte{0, 2, 2}, 3, []byte{0}, nil},
		{[]byte{0, 0, 1}, 3, []byte{0, 0}, nil},
		{[]byte{0, 0, 0, 3, 3, 3}, 3, []byte{0, 0, 0}, nil},
		{[]byte{0, 0, 0}, 3, nil, ErrInvalidPadding},
		{[]byte{4, 4, 4}, 3, nil, ErrInvalidPadding},
		{[]byte{1, 3, 2}, 3, nil, ErrInvalidPadding},
		{[]byte{1, 1}, 3, nil, ErrInvalidPadding},
		{nil, 3, nil, ErrInvalidPadding},
	}
	for _, c := range cases {
		got, err := Unpad(c.buf, c.blockSize)
		if !errors.Is(err, c.err) {
			t.Errorf("Unpad(%v, %v) error = %v, want %v", c.buf, c.blockSize, err, c.err)
			continue
		}
		if !bytes.Equal(got, c.want) {
			t.Errorf("Unpad(%v, %v) == %v, want %v", c.buf, c.blockSize, got, c.want)
		}
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		buf       []byte
		blockSize int
		want      bool
	}{
		{[]byte{0, 0, 0}, 3, false},
		{[]byte{4, 4, 4}, 3, false},
		{[]byte{5, 5, 5, 5, 5, 5}, 6, true},
		{[]byte{1, 2, 3, 4, 5, 5}, 6, false},
		{[]byte{0, 5, 5, 5, 5, 5}, 6, true},
		{[]byte{6, 6, 6, 6, 6, 6}, 6, true},
	}
	for _, c := range cases {
		if got := Valid(c.buf, c.blockSize); got != c.want {
			t.Errorf("Valid(%v, %v) == %v, want %v", c.buf, c.blockSize, got, c.want)
		}
	}
}
