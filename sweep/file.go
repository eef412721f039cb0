package sweep

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDefinition reads a sweep definition from a yaml file
func LoadDefinition(filePath string) (*Definition, error) {
	bs, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read sweep file: %w", err)
	}
	return ParseDefinition(bs)
}

func ParseDefinition(bs []byte) (*Definition, error) {
	d := &Definition{}
	dec := yaml.NewDecoder(bytes.NewReader(bs))
	dec.KnownFields(true)
	if err := dec.Decode(d); err != nil {
		return nil, fmt.Errorf("parse sweep file: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Marshal renders the definition as yaml, handy as a starting point for a new sweep file
func (d *Definition) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}
