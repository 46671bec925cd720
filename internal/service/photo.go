package service

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/mallkiller3-ctrl/daily-health/internal/model"
)

// AddPhotoFromFile reads an image file and stores it as a data URI.
func AddPhotoFromFile(t *Tracker, date, path string) (model.BodyCheckPhoto, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.BodyCheckPhoto{}, fmt.Errorf("read photo: %w", err)
	}
	uri, err := EncodeDataURI(raw)
	if err != nil {
		return model.BodyCheckPhoto{}, err
	}
	return t.AddPhoto(date, uri)
}

func EncodeDataURI(raw []byte) (string, error) {
	mime := http.DetectContentType(raw)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("photo is not an image (detected %s)", mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeDataURI returns the payload and media type of a base64 data URI.
func DecodeDataURI(uri string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URI")
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return nil, "", fmt.Errorf("data URI is not base64 encoded")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode data URI: %w", err)
	}
	return raw, mime, nil
}

// ImageExtension maps a media type to a file extension for saving.
func ImageExtension(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	default:
		return ".img"
	}
}
