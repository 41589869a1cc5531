package key

import (
	"bytes"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "AES-128", size: 16},
		{name: "AES-192", size: 24},
		{name: "AES-256", size: 32},
		{name: "too short", size: 15, wantErr: true},
		{name: "empty", size: 0, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			k, err := New(make([]byte, test.size))
			if test.wantErr {
				if err == nil {
					t.Errorf("New(%d bytes) expected an error", test.size)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%d bytes): %s", test.size, err)
			}
			if k.Len() != test.size {
				t.Errorf("Len() = %d, want %d", k.Len(), test.size)
			}
		})
	}
}

func TestNewCopiesMaterial(t *testing.T) {
	material := []byte("128bitsforkeysss")
	k, err := New(material)
	if err != nil {
		t.Fatal(err)
	}

	material[0] = 'X'
	k.Bytes()[1] = 'Y'

	if got := k.Bytes(); !bytes.Equal(got, []byte("128bitsforkeysss")) {
		t.Errorf("key material changed: %q", got)
	}
}

func TestRandom(t *testing.T) {
	a, err := Random(16)
	if err != nil {
		t.Fatal(err)
	}
	b := Bit128()

	if bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Errorf("Random created identical keys %x and %x", a.Bytes(), b.Bytes())
	}
	if _, err := Random(7); err == nil {
		t.Errorf("Random(7) expected an error")
	}
}
