package oracle

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
)

type Encoding string

const (
	Hex    Encoding = "hex"
	Base64 Encoding = "base64"
)

func (e Encoding) encode(b []byte) (string, error) {
	switch e {
	case Hex, "":
		return hex.EncodeToString(b), nil
	case Base64:
		return base64.URLEncoding.EncodeToString(b), nil
	default:
		return "", fmt.Errorf("unknown encoding %q", string(e))
	}
}

// HTTP queries a remote endpoint that embeds the ciphertext in a query
// parameter. The answer is read off the status code alone.
type HTTP struct {
	Client *http.Client

	// URL is the endpoint. The ciphertext is set as query parameter Param.
	URL      string
	Param    string
	Encoding Encoding

	// ValidStatus and InvalidStatus map status codes to a pad answer. Any
	// other status is a ProbeError.
	ValidStatus   []int
	InvalidStatus []int
}

// NewHTTP returns an HTTP oracle with the conventions of the classic
// crypto-class target: 404 (pad ok, message malformed) and 200 mean valid
// padding, 403 means invalid padding.
func NewHTTP(target string) *HTTP {
	return &HTTP{
		Client:        http.DefaultClient,
		URL:           target,
		Param:         "er",
		Encoding:      Hex,
		ValidStatus:   []int{http.StatusOK, http.StatusNotFound},
		InvalidStatus: []int{http.StatusForbidden},
	}
}

// Validate reports configuration errors that would make every probe fail.
func (h *HTTP) Validate() error {
	u, err := url.Parse(h.URL)
	if err != nil {
		return fmt.Errorf("invalid oracle url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid oracle url %q: scheme must be http or https", h.URL)
	}
	if h.Param == "" {
		return fmt.Errorf("empty query parameter name")
	}
	if _, err := h.Encoding.encode(nil); err != nil {
		return err
	}
	return nil
}

func (h *HTTP) Probe(ctx context.Context, ciphertext []byte) (bool, error) {
	req, err := h.request(ctx, ciphertext)
	if err != nil {
		return false, err
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return false, &ProbeError{Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case slices.Contains(h.ValidStatus, resp.StatusCode):
		return true, nil
	case slices.Contains(h.InvalidStatus, resp.StatusCode):
		return false, nil
	default:
		return false, &ProbeError{Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
}

func (h *HTTP) request(ctx context.Context, ciphertext []byte) (*http.Request, error) {
	u, err := url.Parse(h.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid oracle url: %w", err)
	}

	v, err := h.Encoding.encode(ciphertext)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set(h.Param, v)
	u.RawQuery = q.Encode()

	return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
}
