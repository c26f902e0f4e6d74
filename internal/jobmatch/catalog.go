// Package jobmatch maps free-text job titles onto a catalog of roles and
// measures how many of a role's expected keywords appear in a resume.
package jobmatch

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Role is one catalog entry.
type Role struct {
	Title    string   `yaml:"title" json:"title"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

type catalogFile struct {
	Roles []Role `yaml:"roles"`
}

// Catalog is immutable once built and safe to share between goroutines.
type Catalog struct {
	roles      []Role
	normalized []string
	index      map[string]int
}

var ErrEmptyCatalog = errors.New("job keyword catalog is empty")

// NewCatalog copies roles and indexes them by normalized title. It fails on an
// empty catalog, a title that normalizes to nothing, or duplicate titles.
func NewCatalog(roles []Role) (*Catalog, error) {
	if len(roles) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		roles:      make([]Role, 0, len(roles)),
		normalized: make([]string, 0, len(roles)),
		index:      make(map[string]int, len(roles)),
	}

	for _, role := range roles {
		key := Normalize(role.Title)
		if key == "" {
			return nil, fmt.Errorf("invalid catalog role %q: title is empty after normalization", role.Title)
		}
		if _, dup := c.index[key]; dup {
			return nil, fmt.Errorf("invalid catalog role %q: duplicate title", role.Title)
		}

		keywords := make([]string, len(role.Keywords))
		copy(keywords, role.Keywords)

		c.index[key] = len(c.roles)
		c.roles = append(c.roles, Role{Title: key, Keywords: keywords})
		c.normalized = append(c.normalized, key)
	}

	return c, nil
}

// ParseCatalog decodes a YAML document with a top-level "roles" list.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse job catalog: %w", err)
	}
	return NewCatalog(file.Roles)
}

func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read job catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// LoadCatalog reads path when set, otherwise the embedded catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	return LoadCatalogFile(path)
}

// Titles lists the normalized role titles in catalog order.
func (c *Catalog) Titles() []string {
	titles := make([]string, len(c.normalized))
	copy(titles, c.normalized)
	return titles
}

// Roles returns a deep copy of the catalog entries.
func (c *Catalog) Roles() []Role {
	roles := make([]Role, len(c.roles))
	for i, r := range c.roles {
		keywords := make([]string, len(r.Keywords))
		copy(keywords, r.Keywords)
		roles[i] = Role{Title: r.Title, Keywords: keywords}
	}
	return roles
}

// Keywords returns the keyword list of an exact normalized title.
func (c *Catalog) Keywords(title string) ([]string, bool) {
	i, ok := c.index[Normalize(title)]
	if !ok {
		return nil, false
	}
	keywords := make([]string, len(c.roles[i].Keywords))
	copy(keywords, c.roles[i].Keywords)
	return keywords, true
}

func (c *Catalog) Len() int {
	return len(c.roles)
}
