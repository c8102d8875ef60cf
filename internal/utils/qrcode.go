package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skip2/go-qrcode"
)

// GenerateEntryPassQR writes a QR image encoding the registration code.
// The pass is generated when an approval is confirmed and is what staff
// scan at the venue entrance.
func GenerateEntryPassQR(registrationCode, dirPath string) (string, error) {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create QR directory: %w", err)
	}

	filename := fmt.Sprintf("%s.png", strings.ReplaceAll(registrationCode, "#", "-"))
	fullPath := filepath.Join(dirPath, filename)

	if err := qrcode.WriteFile(registrationCode, qrcode.Medium, 256, fullPath); err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	return filename, nil
}
