package curriculum

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source loads a catalog once at startup.
type Source interface {
	Load(ctx context.Context) (Catalog, error)
}

// BuiltinSource serves DefaultCatalog.
type BuiltinSource struct{}

func (BuiltinSource) Load(ctx context.Context) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return Catalog{}, err
	}
	return DefaultCatalog(), nil
}

// FileSource reads a YAML catalog from disk.
type FileSource struct {
	Path string
}

type catalogFile struct {
	Tiers []struct {
		Name        string   `yaml:"name"`
		MinSemester int      `yaml:"min_semester"`
		Topics      []string `yaml:"topics"`
	} `yaml:"tiers"`
}

func (s FileSource) Load(ctx context.Context) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return Catalog{}, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog file: %w", err)
	}
	return ParseCatalogYAML("file:"+s.Path, data)
}

// ParseCatalogYAML decodes and validates a YAML catalog document.
func ParseCatalogYAML(source string, data []byte) (Catalog, error) {
	var doc catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Catalog{}, fmt.Errorf("%w: decode yaml: %v", ErrInvalidCatalog, err)
	}
	tiers := make([]Tier, 0, len(doc.Tiers))
	for _, t := range doc.Tiers {
		tiers = append(tiers, Tier{Name: TierName(t.Name), MinSemester: t.MinSemester, Topics: t.Topics})
	}
	return NewCatalog(source, tiers...)
}
