package arrangement

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"
)

// Load reads and parses the arrangement at path.
func Load(path string) (*Arrangement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	a, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	a.SourceFile = filepath.Base(path)
	return a, nil
}

// Parse decodes arrangement TOML. Clips without an id get a random one so
// they can still be dragged.
func Parse(data []byte) (*Arrangement, error) {
	var a Arrangement
	if err := toml.Unmarshal(data, &a); err != nil {
		return nil, err
	}
	for i := range a.Clips {
		if a.Clips[i].ID == "" {
			a.Clips[i].ID = uuid.NewString()
		}
	}
	return &a, nil
}
