// internal/vault/compression.go
package vault

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// compressor handles zstd compression of stored versions. EncodeAll and
// DecodeAll are safe for concurrent use on a shared encoder/decoder.
type compressor struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
	min int
}

func newCompressor(min int) (*compressor, error) {
	if min <= 0 {
		min = 1024
	}

	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("creating encoder: %w", err)
	}

	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
	)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("creating decoder: %w", err)
	}

	return &compressor{enc: enc, dec: dec, min: min}, nil
}

// compress returns the stored form of content and whether it was compressed.
// Small versions and versions that do not shrink are stored raw.
func (c *compressor) compress(content []byte) ([]byte, bool) {
	if len(content) < c.min {
		return content, false
	}
	compressed := c.enc.EncodeAll(content, nil)
	if len(compressed) >= len(content) {
		return content, false
	}
	return compressed, true
}

func (c *compressor) decompress(content []byte) ([]byte, error) {
	if len(content) < len(zstdMagic) || !bytes.Equal(content[:4], zstdMagic) {
		// Stored raw despite the metadata flag; hand it back untouched.
		return content, nil
	}
	return c.dec.DecodeAll(content, nil)
}
