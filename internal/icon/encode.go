package icon

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"

	ico "github.com/sergeymakinen/go-ico"
)

// Format selects the byte encoding handed to a tray host.
type Format int

// Encodings. Windows trays need ICO, everything else takes PNG.
const (
	FormatPNG Format = iota
	FormatICO
)

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeICO encodes img as a single-image ICO.
func EncodeICO(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := ico.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode ICO: %w", err)
	}
	return buf.Bytes(), nil
}

type cacheKey struct {
	spec   Spec
	format Format
}

var cache sync.Map // cacheKey -> []byte

// Bytes renders and encodes spec, memoizing the result. There are only a
// dozen specs, so the cache is unbounded.
func Bytes(spec Spec, format Format) ([]byte, error) {
	key := cacheKey{spec: spec, format: format}
	if b, ok := cache.Load(key); ok {
		return b.([]byte), nil
	}

	img := Render(spec)
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatICO:
		data, err = EncodeICO(img)
	default:
		data, err = EncodePNG(img)
	}
	if err != nil {
		return nil, err
	}

	cache.Store(key, data)
	return data, nil
}
