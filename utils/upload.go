package utils

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SaveBase64Image decodes a data-URL image, writes it under static/uploads
// with a uuid filename, and returns the public /uploads path.
func SaveBase64Image(base64String string) (string, error) {
	parts := strings.SplitN(base64String, ",", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid base64 string format")
	}

	meta := parts[0]
	data := parts[1]

	contentType := strings.TrimPrefix(meta, "data:")
	contentType = strings.SplitN(contentType, ";", 2)[0]

	var extension string
	switch contentType {
	case "image/png":
		extension = ".png"
	case "image/jpeg", "image/jpg":
		extension = ".jpg"
	case "image/gif":
		extension = ".gif"
	default:
		return "", fmt.Errorf("unsupported image content type: %s", contentType)
	}

	decodedData, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64 string: %w", err)
	}

	fileName := uuid.New().String() + extension
	filePath := filepath.Join("static", "uploads", fileName)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	if err := os.WriteFile(filePath, decodedData, 0644); err != nil {
		return "", fmt.Errorf("failed to save image file: %w", err)
	}

	return fmt.Sprintf("/uploads/%s", fileName), nil
}

// IsDataURLImage reports whether s looks like an inline base64 image rather
// than an already-stored path.
func IsDataURLImage(s string) bool {
	return strings.HasPrefix(s, "data:image/")
}
