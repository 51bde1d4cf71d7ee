package render

import (
	"fmt"
	"image"

	"github.com/skip2/go-qrcode"
)

const defaultQRCodeSizePx = 256

// GenerateQRCodeImage returns a QR code image for the given payload.
// If payload is empty, it returns (nil, nil).
func GenerateQRCodeImage(payload string, sizePx int) (image.Image, error) {
	if payload == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}
	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qrcode: %w", err)
	}
	code.DisableBorder = true
	return code.Image(sizePx), nil
}

// QRCache keeps the last generated code so screens can redraw every frame
// without re-encoding.
type QRCache struct {
	payload string
	size    int
	img     image.Image
	err     error
}

func (c *QRCache) Get(payload string, sizePx int) (image.Image, error) {
	if c.img != nil && payload == c.payload && sizePx == c.size {
		return c.img, c.err
	}
	c.payload, c.size = payload, sizePx
	c.img, c.err = GenerateQRCodeImage(payload, sizePx)
	return c.img, c.err
}
