package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownItemKind          = errors.New("unknown item kind")
	ErrUnsupportedCatalogFormat = errors.New("unsupported catalog format")
)

// Catalog is a seed list of patrons and holdings.
type Catalog struct {
	Patrons []CatalogPatron `toml:"patrons" yaml:"patrons" json:"patrons"`
	Items   []CatalogItem   `toml:"items" yaml:"items" json:"items"`
}

type CatalogPatron struct {
	ID   string `toml:"id" yaml:"id" json:"id"`
	Name string `toml:"name" yaml:"name" json:"name"`
}

// CatalogItem describes one holding. Creator is the author, artist or
// director depending on Kind.
type CatalogItem struct {
	ID      string `toml:"id" yaml:"id" json:"id"`
	Title   string `toml:"title" yaml:"title" json:"title"`
	Kind    string `toml:"kind" yaml:"kind" json:"kind"`
	Creator string `toml:"creator" yaml:"creator" json:"creator"`
}

// LoadCatalog reads a catalog file, choosing the decoder by extension.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(filepath.Ext(path), data)
}

// ParseCatalog decodes data in the format named by ext (".toml", ".yaml",
// ".yml" or ".json").
func ParseCatalog(ext string, data []byte) (*Catalog, error) {
	var c Catalog
	var err error
	switch strings.ToLower(ext) {
	case ".toml":
		err = toml.Unmarshal(data, &c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &c)
	case ".json":
		err = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &c)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCatalogFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &c, nil
}

// Item builds the holding described by ci.
func (ci CatalogItem) Item() (Item, error) {
	switch strings.ToLower(ci.Kind) {
	case "", "item":
		return NewLibraryItem(ci.ID, ci.Title), nil
	case "book":
		return NewBook(ci.ID, ci.Title, ci.Creator), nil
	case "album":
		return NewAlbum(ci.ID, ci.Title, ci.Creator), nil
	case "movie":
		return NewMovie(ci.ID, ci.Title, ci.Creator), nil
	}
	return nil, fmt.Errorf("%w: %q for item %s", ErrUnknownItemKind, ci.Kind, ci.ID)
}

// Register adds every patron and item to lib. Nothing is added if any item
// kind is unknown.
func (c *Catalog) Register(lib *Library) error {
	items := make([]Item, 0, len(c.Items))
	for _, ci := range c.Items {
		it, err := ci.Item()
		if err != nil {
			return err
		}
		items = append(items, it)
	}
	for _, cp := range c.Patrons {
		lib.AddPatron(NewPatron(cp.ID, cp.Name))
	}
	for _, it := range items {
		lib.AddLibraryItem(it)
	}
	return nil
}
