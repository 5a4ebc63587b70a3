//go:build ocr

package loader

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// recognizeImage runs tesseract over the image bytes and returns the raw
// recognized text.
func recognizeImage(data []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("set ocr image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("run ocr: %w", err)
	}
	return text, nil
}
