//go:build !ocr

package loader

func recognizeImage([]byte) (string, error) {
	return "", ErrOCRNotEnabled
}
