package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilePersister keeps each cart as a JSON file in a directory, one file per id
type FilePersister struct {
	dir string
}

// NewFilePersister creates dir if needed and stores carts under it
func NewFilePersister(dir string) (*FilePersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cart directory: %w", err)
	}
	return &FilePersister{dir: dir}, nil
}

func (p *FilePersister) path(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", ErrInvalidCartID
	}
	return filepath.Join(p.dir, id+".json"), nil
}

func (p *FilePersister) Load(_ context.Context, id string) (*Cart, error) {
	path, err := p.path(id)
	if err != nil {
		return nil, err
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read cart %s: %w", id, err)
	}

	c := New()
	if err := json.Unmarshal(payload, c); err != nil {
		return nil, fmt.Errorf("failed to decode cart %s: %w", id, err)
	}
	return c, nil
}

// Save writes to a temporary file and renames it over the old one
func (p *FilePersister) Save(_ context.Context, id string, c *Cart) error {
	path, err := p.path(id)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart %s: %w", id, err)
	}

	tmp, err := os.CreateTemp(p.dir, id+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cart %s: %w", id, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write cart %s: %w", id, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace cart %s: %w", id, err)
	}
	return nil
}

func (p *FilePersister) Delete(_ context.Context, id string) error {
	path, err := p.path(id)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete cart %s: %w", id, err)
	}
	return nil
}
