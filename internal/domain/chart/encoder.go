package chart

import (
	"math"
	"sort"

	"github.com/diillson/aws-cost-chart/internal/domain/entity"
)

// Bounds of the grayscale ramp for uncategorized services, as a fraction of
// full intensity. The first service gets the light bound.
const (
	GrayLight = 0.8
	GrayDark  = 0.2
)

// Encoding maps every service of a figure to its style. It is computed once
// per figure so that a service looks the same in every panel.
type Encoding struct {
	styles map[string]entity.Style
	others entity.Style
}

// Style returns the style of a service. The "Others" id and services that
// were not part of the encoded set get the "Others" style.
func (e *Encoding) Style(serviceID string) entity.Style {
	if s, ok := e.styles[serviceID]; ok {
		return s
	}
	return e.others
}

// Has reports whether a service has its own style.
func (e *Encoding) Has(serviceID string) bool {
	_, ok := e.styles[serviceID]
	return ok
}

// Encode assigns a style to every service. Services are partitioned by
// category first; inside a category, members are ordered by the explicit
// order when given, then by ranking, and get the category color with a hatch
// from the cycle (wrapping around when the category is larger than the
// cycle). Uncategorized services are ordered by id and get a grayscale ramp
// without hatch.
//
// When explicit is non-empty it is the primary key inside a category: a
// listed service takes an earlier hatch than an unlisted one even if its
// peak is lower. The ranking only orders services the explicit list does not
// separate. Category blocks are never reordered by explicit.
func Encode(reg *Registry, services []string, ranking []string, explicit []string) *Encoding {
	enc := &Encoding{
		styles: make(map[string]entity.Style, len(services)),
		others: reg.OthersStyle(),
	}

	explicitPos := explicitPositions(explicit)
	rankPos := explicitPositions(ranking)

	byCategory := make(map[string][]string)
	var uncategorized []string
	seen := make(map[string]bool, len(services))
	for _, id := range services {
		if seen[id] || id == entity.OthersServiceID {
			continue
		}
		seen[id] = true
		if cat, ok := reg.Category(id); ok {
			byCategory[cat] = append(byCategory[cat], id)
		} else {
			uncategorized = append(uncategorized, id)
		}
	}

	hatches := reg.Hatches()
	for cat, members := range byCategory {
		sort.Slice(members, func(i, j int) bool {
			a, b := members[i], members[j]
			if len(explicitPos) > 0 {
				if pa, pb := positionOf(explicitPos, a), positionOf(explicitPos, b); pa != pb {
					return pa < pb
				}
			}
			if ra, rb := positionOf(rankPos, a), positionOf(rankPos, b); ra != rb {
				return ra < rb
			}
			return a < b
		})
		color, _ := reg.CategoryColor(cat)
		for i, id := range members {
			idx := i % len(hatches)
			enc.styles[id] = entity.Style{Color: color, Hatch: hatches[idx], HatchIndex: idx}
		}
	}

	sort.Strings(uncategorized)
	for i, id := range uncategorized {
		enc.styles[id] = entity.Style{Color: grayAt(i, len(uncategorized)), HatchIndex: -1}
	}

	return enc
}

// grayAt interpolates linearly from GrayLight to GrayDark.
func grayAt(i, n int) entity.Color {
	span := n - 1
	if span < 1 {
		span = 1
	}
	v := GrayLight - (GrayLight-GrayDark)*float64(i)/float64(span)
	c := uint8(math.Round(v * 255))
	return entity.Color{R: c, G: c, B: c}
}
