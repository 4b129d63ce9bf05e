package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"glamify/internal/domain"
)

// NumericText accepts a JSON string or a JSON number and keeps its text.
// Parsing happens in domain validation so that bad input becomes a field
// error instead of a silent zero.
type NumericText string

func (n *NumericText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericText(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return errors.New("must be a string or a number")
	}
	*n = NumericText(num.String())
	return nil
}

// ImageList accepts either an array of references or one newline separated
// text block
type ImageList struct {
	List []string
	Text string
}

func (l *ImageList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*l = ImageList{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*l = ImageList{Text: text}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.New("images must be an array of strings or a text block")
	}
	*l = ImageList{List: list}
	return nil
}

// ProductRequest represents the admin product form payload
type ProductRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       NumericText `json:"price"`
	Stock       NumericText `json:"stock"`
	Category    string      `json:"category"`
	Images      ImageList   `json:"images"`
	// ImageURLs is an extra newline separated block appended after Images
	ImageURLs string `json:"image_urls"`
	Featured  bool   `json:"featured"`
}

// ToInput converts the payload into the raw domain input
func (r ProductRequest) ToInput() domain.ProductInput {
	var blocks []string
	for _, block := range []string{r.Images.Text, r.ImageURLs} {
		if strings.TrimSpace(block) != "" {
			blocks = append(blocks, block)
		}
	}

	return domain.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       string(r.Price),
		Stock:       string(r.Stock),
		Category:    r.Category,
		Images:      r.Images.List,
		ImageText:   strings.Join(blocks, "\n"),
		Featured:    r.Featured,
	}
}
