// Package maplink builds map-search links for activity locations.
package maplink

import (
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const searchBase = "https://www.google.com/maps/search/"

// SearchURL returns a Google Maps search link for location.
// Spaces are encoded as %20, not +.
func SearchURL(location string) string {
	query := strings.ReplaceAll(url.QueryEscape(location), "+", "%20")
	return searchBase + "?api=1&query=" + query
}

// QRCode renders link as a PNG of the given pixel size
func QRCode(link string, size int) ([]byte, error) {
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// WriteQR writes link as a PNG QR code to path
func WriteQR(link, path string, size int) error {
	if err := qrcode.WriteFile(link, qrcode.Medium, size, path); err != nil {
		return fmt.Errorf("write qr: %w", err)
	}
	return nil
}
