// Package career recommends career paths from a candidate's skills.
package career

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Haloween-arch/Jobtune/internal/parsing"
	"github.com/Haloween-arch/Jobtune/internal/types"
)

//go:embed catalogue.yaml
var defaultCatalogue []byte

// Catalogue is the static set of career paths and learning resources.
type Catalogue struct {
	Paths     []types.CareerPath                 `yaml:"paths"`
	Resources map[string]types.LearningResources `yaml:"resources"`
}

// CatalogueError is returned when catalogue data cannot be decoded or is inconsistent
type CatalogueError struct {
	Message string
	Cause   error
}

func (e *CatalogueError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("career catalogue: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("career catalogue: %s", e.Message)
}

func (e *CatalogueError) Unwrap() error {
	return e.Cause
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalogue
	defaultErr  error
)

// DefaultCatalogue returns the embedded catalogue, decoded once.
func DefaultCatalogue() (*Catalogue, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = ParseCatalogue(defaultCatalogue)
	})
	return defaultCat, defaultErr
}

// ParseCatalogue decodes and validates YAML catalogue data. Required skills
// and resource keys are normalized so lookups are case-insensitive.
func ParseCatalogue(data []byte) (*Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, &CatalogueError{Message: "failed to decode YAML", Cause: err}
	}

	if len(c.Paths) == 0 {
		return nil, &CatalogueError{Message: "no career paths defined"}
	}

	seen := make(map[string]bool, len(c.Paths))
	for i := range c.Paths {
		p := &c.Paths[i]
		if p.Role == "" {
			return nil, &CatalogueError{Message: fmt.Sprintf("path %d has no role", i)}
		}
		if seen[p.Role] {
			return nil, &CatalogueError{Message: fmt.Sprintf("duplicate role %q", p.Role)}
		}
		seen[p.Role] = true
		if !p.Category.IsValid() {
			return nil, &CatalogueError{Message: fmt.Sprintf("role %q has unknown category %q", p.Role, p.Category)}
		}
		p.RequiredSkills = parsing.NormalizeSkills(p.RequiredSkills)
		if len(p.RequiredSkills) == 0 {
			return nil, &CatalogueError{Message: fmt.Sprintf("role %q has no required skills", p.Role)}
		}
	}

	resources := make(map[string]types.LearningResources, len(c.Resources))
	for skill, links := range c.Resources {
		resources[parsing.NormalizeSkill(skill)] = links
	}
	c.Resources = resources

	return &c, nil
}

// ResourcesFor returns the learning links for a skill, or an empty mapping
func (c *Catalogue) ResourcesFor(skill string) types.LearningResources {
	links, ok := c.Resources[parsing.NormalizeSkill(skill)]
	if !ok {
		return types.LearningResources{}
	}
	out := make(types.LearningResources, len(links))
	for platform, url := range links {
		out[platform] = url
	}
	return out
}
