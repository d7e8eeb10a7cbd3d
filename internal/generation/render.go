package generation

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/datamatrix"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/qr"
)

const (
	linearWidth  = 400
	linearHeight = 160
	matrixSize   = 256
)

// RenderPNG encodes the payload in the requested symbology and returns the
// PNG bytes.
func RenderPNG(standardKey, data string) ([]byte, error) {
	encoded, width, height, err := encode(standardKey, data)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", standardKey, err)
	}

	scaled, err := barcode.Scale(encoded, width, height)
	if err != nil {
		return nil, fmt.Errorf("scale %s: %w", standardKey, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}

func encode(standardKey, data string) (barcode.Barcode, int, int, error) {
	switch standardKey {
	case "qr_code":
		bc, err := qr.Encode(data, qr.M, qr.Auto)
		return bc, matrixSize, matrixSize, err
	case "datamatrix":
		bc, err := datamatrix.Encode(data)
		return bc, matrixSize, matrixSize, err
	case "code128":
		bc, err := code128.Encode(data)
		return bc, linearWidth, linearHeight, err
	case "code39":
		bc, err := code39.Encode(data, true, true)
		return bc, linearWidth, linearHeight, err
	case "ean13", "upc":
		bc, err := ean.Encode(data)
		return bc, linearWidth, linearHeight, err
	default:
		return nil, 0, 0, fmt.Errorf("unsupported barcode type %q", standardKey)
	}
}
