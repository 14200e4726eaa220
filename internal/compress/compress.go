package compress

import (
	"encoding/base64"
	"fmt"
)

// Compress encodes and decodes stored payloads. Name is recorded next to the
// payload so it can be decoded after the configured codec changes.
type Compress interface {
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
	Name() string
}

// New returns the codec registered under name.
func New(name string) (Compress, error) {
	switch name {
	case "", NopName:
		return NewNop(), nil
	case GZipName:
		return NewGZip(), nil
	case BrotliName:
		return NewBrotli(), nil
	case LZ4Name:
		return NewLZ4(), nil
	default:
		return nil, fmt.Errorf("unknown compression %q", name)
	}
}

// EncodeString compresses s and returns it as base64 text suitable for a
// text column. The nop codec stores s unchanged.
func EncodeString(c Compress, s string) (string, error) {
	if c.Name() == NopName {
		return s, nil
	}

	data, err := c.Encode([]byte(s))
	if err != nil {
		return "", fmt.Errorf("%s encode: %w", c.Name(), err)
	}

	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeString reverses EncodeString.
func DecodeString(c Compress, s string) (string, error) {
	if c.Name() == NopName || s == "" {
		return s, nil
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("%s decode: %w", c.Name(), err)
	}

	out, err := c.Decode(data)
	if err != nil {
		return "", fmt.Errorf("%s decode: %w", c.Name(), err)
	}

	return string(out), nil
}
