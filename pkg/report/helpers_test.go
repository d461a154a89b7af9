package report

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedDate = time.Date(2025, time.December, 4, 9, 30, 0, 0, time.UTC)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: 120, B: uint8(y * 11), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func validChart(t *testing.T) Rasterizer {
	data := encodePNG(t, 32, 18)
	return RasterizerFunc(func(width, height int, scale float64) ([]byte, error) {
		return data, nil
	})
}

func failingChart(msg string) Rasterizer {
	return RasterizerFunc(func(width, height int, scale float64) ([]byte, error) {
		return nil, errors.New(msg)
	})
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Compression = false
	cfg.Now = func() time.Time { return fixedDate }
	return cfg
}

// drawnImages counts image draw operators. fpdf stores identical image bytes once, so
// the number of image objects can be lower than the number of images on the pages.
func drawnImages(doc []byte) int {
	return bytes.Count(doc, []byte(" Do Q"))
}

func indexesInOrder(t *testing.T, doc []byte, needles ...string) {
	t.Helper()
	last := -1
	for _, n := range needles {
		idx := bytes.Index(doc, []byte(n))
		require.GreaterOrEqualf(t, idx, 0, "%q not found in document", n)
		require.Greaterf(t, idx, last, "%q is out of order", n)
		last = idx
	}
}
