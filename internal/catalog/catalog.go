package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

// Subject is a canonical subject name with the filename keywords that map to it.
type Subject struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// Cluster is a named group of subjects that must all be valid before a
// combined exam page is produced.
type Cluster struct {
	Name     string   `yaml:"name"`
	Required []string `yaml:"required"`
}

// Catalog is the immutable subject and cluster table. Subject order is the
// detection order.
type Catalog struct {
	subjects []Subject
	clusters []Cluster
}

var defaultSubjects = []Subject{
	{Name: "physics", Aliases: []string{"physics", "phy"}},
	{Name: "mathematics", Aliases: []string{"mathematics", "math", "maths"}},
	{Name: "english", Aliases: []string{"english", "eng"}},
	{Name: "chemistry", Aliases: []string{"chemistry", "chem"}},
	{Name: "biology", Aliases: []string{"biology", "bio"}},
	{Name: "literature", Aliases: []string{"literature", "lit"}},
	{Name: "government", Aliases: []string{"government", "govt"}},
	{Name: "crs", Aliases: []string{"crs", "christian", "religious"}},
	{Name: "accounting", Aliases: []string{"accounting", "acct"}},
	{Name: "commerce", Aliases: []string{"commerce", "comm"}},
	{Name: "economics", Aliases: []string{"economics", "econ", "eco"}},
}

var defaultClusters = []Cluster{
	{Name: "science-cluster-a", Required: []string{"mathematics", "english", "physics", "chemistry"}},
	{Name: "science-cluster-b", Required: []string{"biology", "english", "physics", "chemistry"}},
	{Name: "arts-cluster-a", Required: []string{"english", "literature", "government", "crs"}},
	{Name: "commercial-cluster-a", Required: []string{"english", "accounting", "commerce", "economics"}},
	{Name: "commercial-cluster-b", Required: []string{"english", "mathematics", "economics", "government"}},
	{Name: "commercial-cluster-c", Required: []string{"english", "economics", "government", "commerce"}},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultSubjects, defaultClusters)
	if err != nil {
		panic(err)
	}
	return c
}

// New validates and deep-copies the given tables.
func New(subjects []Subject, clusters []Cluster) (*Catalog, error) {
	out := &Catalog{
		subjects: make([]Subject, 0, len(subjects)),
		clusters: make([]Cluster, 0, len(clusters)),
	}

	seen := make(map[string]bool, len(subjects))
	for i, s := range subjects {
		name := strings.ToLower(strings.TrimSpace(s.Name))
		if name == "" {
			return nil, fmt.Errorf("%w: subject %d has no name", ErrInvalidCatalog, i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: subject %q declared twice", ErrInvalidCatalog, name)
		}
		seen[name] = true

		aliases := make([]string, 0, len(s.Aliases))
		for _, a := range s.Aliases {
			a = strings.ToLower(strings.TrimSpace(a))
			if a != "" {
				aliases = append(aliases, a)
			}
		}
		if len(aliases) == 0 {
			return nil, fmt.Errorf("%w: subject %q has no aliases", ErrInvalidCatalog, name)
		}
		out.subjects = append(out.subjects, Subject{Name: name, Aliases: aliases})
	}

	for i, c := range clusters {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: cluster %d has no name", ErrInvalidCatalog, i+1)
		}
		required := make([]string, 0, len(c.Required))
		for _, r := range c.Required {
			r = strings.ToLower(strings.TrimSpace(r))
			if r != "" {
				required = append(required, r)
			}
		}
		if len(required) == 0 {
			return nil, fmt.Errorf("%w: cluster %q requires no subjects", ErrInvalidCatalog, name)
		}
		out.clusters = append(out.clusters, Cluster{Name: name, Required: required})
	}

	return out, nil
}

type fileFormat struct {
	Subjects []Subject `yaml:"subjects"`
	Clusters []Cluster `yaml:"clusters"`
}

// Load reads a YAML catalog. An empty path yields the built-in catalog, and
// a section missing from the file keeps its built-in value.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a YAML catalog document. Unknown keys are rejected.
func Parse(raw []byte) (*Catalog, error) {
	var f fileFormat
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if len(f.Subjects) == 0 {
		f.Subjects = defaultSubjects
	}
	if len(f.Clusters) == 0 {
		f.Clusters = defaultClusters
	}
	return New(f.Subjects, f.Clusters)
}

func (c *Catalog) Subjects() []Subject {
	out := make([]Subject, len(c.subjects))
	for i, s := range c.subjects {
		out[i] = Subject{Name: s.Name, Aliases: append([]string(nil), s.Aliases...)}
	}
	return out
}

func (c *Catalog) Clusters() []Cluster {
	out := make([]Cluster, len(c.clusters))
	for i, cl := range c.clusters {
		out[i] = Cluster{Name: cl.Name, Required: append([]string(nil), cl.Required...)}
	}
	return out
}

// Detect scans the lower-cased filename for the first alias hit, iterating
// subjects in declaration order. Aliases are not ranked: a filename that
// matches several subjects resolves to the earliest declared one.
func (c *Catalog) Detect(filename string) (string, bool) {
	lower := strings.ToLower(filename)
	for _, s := range c.subjects {
		for _, alias := range s.Aliases {
			if strings.Contains(lower, alias) {
				return DisplayName(s.Name), true
			}
		}
	}
	return "", false
}

// DisplayName upper-cases the first letter and lower-cases the rest.
func DisplayName(name string) string {
	if name == "" {
		return ""
	}
	r := []rune(strings.ToLower(name))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
