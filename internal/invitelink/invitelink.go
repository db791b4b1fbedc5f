// Package invitelink turns invite tokens into shareable links and QR codes.
package invitelink

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const DefaultQRSize = 256

type Builder struct {
	baseURL string
	qrSize  int
}

func NewBuilder(baseURL string, qrSize int) *Builder {
	if qrSize <= 0 {
		qrSize = DefaultQRSize
	}
	return &Builder{
		baseURL: strings.TrimRight(baseURL, "/"),
		qrSize:  qrSize,
	}
}

func (b *Builder) URL(token string) string {
	return b.baseURL + "/invite/" + url.PathEscape(token)
}

// QRDataURL renders link as a PNG and returns it as a data URL.
func (b *Builder) QRDataURL(link string) (string, error) {
	png, err := qrcode.Encode(link, qrcode.Medium, b.qrSize)
	if err != nil {
		return "", fmt.Errorf("encode qr code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

type Link struct {
	URL       string
	QRDataURL string
}

func (b *Builder) Build(token string) (Link, error) {
	link := b.URL(token)
	qr, err := b.QRDataURL(link)
	if err != nil {
		return Link{}, err
	}
	return Link{URL: link, QRDataURL: qr}, nil
}
