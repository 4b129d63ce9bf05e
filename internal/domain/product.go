package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ImageDelimiter joins image references when the store keeps them in one column
const ImageDelimiter = "|||"

const (
	MaxNameLength     = 255
	MaxCategoryLength = 100
	MaxPrice          = 99999999.99
)

// Product represents a product in the catalog
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Images      []string  `json:"images" db:"images"`
	Category    string    `json:"category" db:"category"`
	Stock       int       `json:"stock" db:"stock"`
	Featured    bool      `json:"featured" db:"featured"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Category is a distinct category label with the number of products using it
type Category struct {
	Name     string `json:"name" db:"category"`
	Products int    `json:"products" db:"products"`
}

// ProductFilter narrows storefront listings
type ProductFilter struct {
	Category     string
	FeaturedOnly bool
}

// ProductInput is the raw admin form. Price and stock arrive as text.
type ProductInput struct {
	Name        string
	Description string
	Price       string
	Stock       string
	Category    string
	// Images holds references submitted as a list, kept verbatim
	Images []string
	// ImageText holds newline separated references, one per line
	ImageText string
	Featured  bool
}

// ProductDraft is a validated ProductInput ready to persist
type ProductDraft struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	Images      []string
	Featured    bool
}

// ParseProductInput validates every field and reports all failures at once
func ParseProductInput(in ProductInput) (ProductDraft, error) {
	verr := &ValidationError{}

	draft := ProductDraft{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Featured:    in.Featured,
	}

	switch {
	case draft.Name == "":
		verr.Add("name", "This field is required")
	case len(draft.Name) > MaxNameLength:
		verr.Add("name", "Value is too long")
	}

	if draft.Description == "" {
		verr.Add("description", "This field is required")
	}

	switch {
	case draft.Category == "":
		verr.Add("category", "This field is required")
	case len(draft.Category) > MaxCategoryLength:
		verr.Add("category", "Value is too long")
	}

	price, msg := parsePrice(in.Price)
	if msg != "" {
		verr.Add("price", msg)
	}
	draft.Price = price

	stock, msg := parseStock(in.Stock)
	if msg != "" {
		verr.Add("stock", msg)
	}
	draft.Stock = stock

	images, fieldErrs := NormalizeImages(in.Images, in.ImageText)
	verr.Fields = append(verr.Fields, fieldErrs...)
	draft.Images = images

	if err := verr.OrNil(); err != nil {
		return ProductDraft{}, err
	}
	return draft, nil
}

func parsePrice(raw string) (float64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "This field is required"
	}

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, "Must be a number"
	}
	if price < 0 {
		return 0, "Value must be greater than or equal to 0"
	}
	if price > MaxPrice {
		return 0, "Value is too large"
	}

	// The store keeps two decimal places
	return math.Round(price*100) / 100, ""
}

func parseStock(raw string) (int, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "This field is required"
	}

	stock, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, "Must be a whole number"
	}
	if stock < 0 {
		return 0, "Value must be greater than or equal to 0"
	}

	return int(stock), ""
}

// NormalizeImages merges the list form and the text block form into one
// ordered list: list entries first, then text lines in order
func NormalizeImages(list []string, text string) ([]string, []FieldError) {
	var errs []FieldError
	images := make([]string, 0, len(list))

	for i, ref := range list {
		if err := ValidateImageRef(ref); err != "" {
			errs = append(errs, FieldError{Field: "images[" + strconv.Itoa(i) + "]", Message: err})
			continue
		}
		images = append(images, ref)
	}

	for i, line := range strings.Split(text, "\n") {
		ref := strings.TrimSpace(line)
		if ref == "" {
			continue
		}
		if err := ValidateImageRef(ref); err != "" {
			errs = append(errs, FieldError{Field: "image_urls:" + strconv.Itoa(i+1), Message: err})
			continue
		}
		images = append(images, ref)
	}

	return images, errs
}

// ValidateImageRef returns a message describing why ref cannot be stored, or
// "" when it is acceptable. A reference must be non-blank, must not contain
// the delimiter and must not end with a pipe, otherwise the joined form
// would split differently than it was joined.
func ValidateImageRef(ref string) string {
	switch {
	case strings.TrimSpace(ref) == "":
		return "Image reference must not be empty"
	case strings.Contains(ref, ImageDelimiter):
		return "Image reference must not contain " + ImageDelimiter
	case strings.HasSuffix(ref, "|"):
		return "Image reference must not end with |"
	}
	return ""
}
