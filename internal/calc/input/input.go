// Package input reads building variables and option catalogs from YAML or
// JSON files.
package input

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"Retrofit/internal/calc/options"
)

type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// FormatOf picks the decoder from a file extension; anything that is not
// .json is read as YAML, which also accepts JSON.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSON
	}
	return YAML
}

// Project is a building and the catalog it selects from, stored in one file.
type Project struct {
	Name      string            `json:"name,omitempty" yaml:"name,omitempty"`
	Variables options.Variables `json:"variables" yaml:"variables"`
	Options   options.Catalog   `json:"options" yaml:"options"`
}

func Decode(r io.Reader, format Format, v any) error {
	switch format {
	case JSON:
		return json.NewDecoder(r).Decode(v)
	case YAML:
		return yaml.NewDecoder(r).Decode(v)
	}
	return fmt.Errorf("unsupported format %q", format)
}

func load(path string, v any) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := Decode(f, FormatOf(path), v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func LoadVariables(path string) (options.Variables, error) {
	vars := options.Variables{}
	if err := load(path, &vars); err != nil {
		return nil, err
	}
	return vars, nil
}

func LoadCatalog(path string) (options.Catalog, error) {
	catalog := options.Catalog{}
	if err := load(path, &catalog); err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("%s: catalog has no categories", path)
	}
	return catalog, nil
}

// LoadProject reads a combined file with "variables" and "options" keys.
func LoadProject(path string) (Project, error) {
	var p Project
	if err := load(path, &p); err != nil {
		return Project{}, err
	}
	if p.Variables == nil || p.Options == nil {
		return Project{}, fmt.Errorf("%s: project needs variables and options", path)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}
