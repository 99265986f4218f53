// Package qr encodes rendered cards as QR code images and scans them back.
package qr

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	qrgen "github.com/skip2/go-qrcode"
)

const (
	// DefaultSize is the image width and height in pixels when none is given.
	DefaultSize = 256
	// MaxSize is the largest accepted image size.
	MaxSize = 4096
)

var (
	ErrEmptyContent = errors.New("nothing to encode")
	ErrInvalidSize  = errors.New("invalid QR code size")
	ErrEncode       = errors.New("failed to encode QR code")
	ErrDecode       = errors.New("failed to decode QR code")
)

// Encode renders text as a PNG QR code of size x size pixels. Medium error
// correction is used unless the text only fits with low correction.
func Encode(text string, size int) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrInvalidSize, size, MaxSize)
	}

	code, err := qrgen.New(text, qrgen.Medium)
	if err != nil {
		code, err = qrgen.New(text, qrgen.Low)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncode, err)
		}
	}

	data, err := code.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return data, nil
}

// Decode scans a PNG image and returns the text of the QR code it contains.
func Decode(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty image", ErrDecode)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return result.GetText(), nil
}
