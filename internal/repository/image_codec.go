package repository

import (
	"fmt"
	"strings"

	"glamify/internal/domain"
)

// encodeImages joins image references into the single column the products
// table stores them in. It refuses references that would not split back.
func encodeImages(images []string) (string, error) {
	for i, ref := range images {
		if msg := domain.ValidateImageRef(ref); msg != "" {
			return "", fmt.Errorf("image %d: %s", i, msg)
		}
	}
	return strings.Join(images, domain.ImageDelimiter), nil
}

// decodeImages is the inverse of encodeImages. An empty column is an empty list.
func decodeImages(encoded string) []string {
	if encoded == "" {
		return []string{}
	}
	return strings.Split(encoded, domain.ImageDelimiter)
}
