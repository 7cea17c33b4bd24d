package services

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/diewo77/go-devis/internal/models"
)

// ErrNotAnImage is returned when an uploaded logo is not an image.
var ErrNotAnImage = errors.New("not_an_image")

// EncodeLogo reads an uploaded file and returns it as a data URI. The content type is
// sniffed from the bytes; the file name and declared type are ignored.
func EncodeLogo(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read logo: %w", err)
	}
	mime := mimetype.Detect(data).String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("logo detected as %s: %w", mime, ErrNotAnImage)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// ValidateLogo checks a logo written directly as a data URI.
func ValidateLogo(payload string) error {
	if !strings.HasPrefix(payload, models.LogoPrefix) {
		return ErrNotAnImage
	}
	return nil
}
