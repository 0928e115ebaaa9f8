// Package chart turns raw daily cost records into a renderer-agnostic
// stacked-bar chart model: per-account panels, a figure-wide service style
// assignment and one merged legend.
package chart

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/diillson/aws-cost-chart/internal/domain/entity"
	"github.com/diillson/aws-cost-chart/internal/shared/types"
)

// DefaultHatches is the hatch cycle used when the catalog does not define one.
// The first entry is a plain fill.
var DefaultHatches = []string{"", "...", "////", "xxxx", "|||", "+++", `\\\\`, "oo", "OO", "**"}

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Registry is the validated, read-only service catalog. Build it once at
// startup with NewRegistry and share it between builders.
type Registry struct {
	services    map[string]types.ServiceDef
	categories  []string
	colors      map[string]entity.Color
	othersLabel string
	others      entity.Style
	hatches     []string
}

// NewRegistry validates a catalog. Any error wraps types.ErrInvalidCatalog.
func NewRegistry(catalog *types.ServiceCatalog) (*Registry, error) {
	if catalog == nil {
		return nil, fmt.Errorf("%w: catalog is empty", types.ErrInvalidCatalog)
	}

	r := &Registry{
		services: make(map[string]types.ServiceDef, len(catalog.Services)),
		colors:   make(map[string]entity.Color, len(catalog.Categories)),
		hatches:  DefaultHatches,
	}
	if len(catalog.Hatches) > 0 {
		r.hatches = append([]string(nil), catalog.Hatches...)
	}

	for i, cat := range catalog.Categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("%w: category #%d has no name", types.ErrInvalidCatalog, i+1)
		}
		if _, dup := r.colors[cat.Name]; dup {
			return nil, fmt.Errorf("%w: category %q is defined twice", types.ErrInvalidCatalog, cat.Name)
		}
		color, err := ParseColor(cat.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: category %q: %v", types.ErrInvalidCatalog, cat.Name, err)
		}
		r.colors[cat.Name] = color
		r.categories = append(r.categories, cat.Name)
	}

	for id, def := range catalog.Services {
		if id == "" {
			return nil, fmt.Errorf("%w: service with empty id", types.ErrInvalidCatalog)
		}
		if id == entity.OthersServiceID {
			return nil, fmt.Errorf("%w: service id %q is reserved", types.ErrInvalidCatalog, id)
		}
		if def.Category != "" {
			if _, ok := r.colors[def.Category]; !ok {
				return nil, fmt.Errorf("%w: service %q uses unknown category %q", types.ErrInvalidCatalog, id, def.Category)
			}
		}
		if def.Label == "" {
			def.Label = id
		}
		r.services[id] = def
	}

	if catalog.Others.Label == "" {
		return nil, fmt.Errorf("%w: others.label is required", types.ErrInvalidCatalog)
	}
	othersColor, err := ParseColor(catalog.Others.Color)
	if err != nil {
		return nil, fmt.Errorf("%w: others: %v", types.ErrInvalidCatalog, err)
	}
	r.othersLabel = catalog.Others.Label
	r.others = entity.Style{
		Color:      othersColor,
		Hatch:      catalog.Others.Hatch,
		HatchIndex: -1,
	}

	return r, nil
}

// ParseColor parses a #rrggbb color.
func ParseColor(s string) (entity.Color, error) {
	if !hexColorRegex.MatchString(s) {
		return entity.Color{}, fmt.Errorf("invalid color %q, expected #rrggbb", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return entity.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return entity.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Label returns the display label of a service. Unknown services are shown
// by their raw id.
func (r *Registry) Label(serviceID string) string {
	if serviceID == entity.OthersServiceID {
		return r.othersLabel
	}
	if def, ok := r.services[serviceID]; ok {
		return def.Label
	}
	return serviceID
}

// Category returns the category of a service, or false when it is uncategorized.
func (r *Registry) Category(serviceID string) (string, bool) {
	def, ok := r.services[serviceID]
	if !ok || def.Category == "" {
		return "", false
	}
	return def.Category, true
}

// Categories returns the configured category order.
func (r *Registry) Categories() []string {
	return append([]string(nil), r.categories...)
}

// CategoryColor returns the color of a configured category.
func (r *Registry) CategoryColor(category string) (entity.Color, bool) {
	c, ok := r.colors[category]
	return c, ok
}

// OthersStyle returns the fixed style of the "Others" segment.
func (r *Registry) OthersStyle() entity.Style {
	return r.others
}

// Hatches returns the hatch cycle.
func (r *Registry) Hatches() []string {
	return append([]string(nil), r.hatches...)
}
