package districts

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed districts.yaml
var embedded []byte

// District is one administrative district and its sub-districts.
type District struct {
	Name         string   `yaml:"name" json:"name"`
	SubDistricts []string `yaml:"sub_districts" json:"sub_districts"`
}

type catalogFile struct {
	Districts []District `yaml:"districts"`
}

// Catalog is a read-only lookup of districts.
type Catalog struct {
	districts []District
	index     map[string]int
}

// Load reads the catalog from path, or the embedded copy when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(embedded)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read districts file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse districts: %w", err)
	}
	c := &Catalog{districts: f.Districts, index: make(map[string]int, len(f.Districts))}
	for i, d := range f.Districts {
		key := normalize(d.Name)
		if _, dup := c.index[key]; dup {
			return nil, fmt.Errorf("duplicate district %q", d.Name)
		}
		c.index[key] = i
	}
	return c, nil
}

// All returns every district in file order.
func (c *Catalog) All() []District {
	return c.districts
}

// Names returns the district names in file order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.districts))
	for i, d := range c.districts {
		names[i] = d.Name
	}
	return names
}

// SubDistricts returns the sub-districts of the named district.
func (c *Catalog) SubDistricts(district string) ([]string, bool) {
	i, ok := c.index[normalize(district)]
	if !ok {
		return nil, false
	}
	return c.districts[i].SubDistricts, true
}

// Validate checks that subDistrict belongs to district. Districts the
// catalog does not know are accepted as-is.
func (c *Catalog) Validate(district, subDistrict string) error {
	subs, ok := c.SubDistricts(district)
	if !ok {
		return nil
	}
	want := normalize(subDistrict)
	for _, s := range subs {
		if normalize(s) == want {
			return nil
		}
	}
	return fmt.Errorf("%q is not a sub-district of %s", subDistrict, district)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
