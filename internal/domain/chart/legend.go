package chart

import (
	"sort"

	"github.com/diillson/aws-cost-chart/internal/domain/entity"
)

// OrderLegend lays out the merged legend: one block per category in catalog
// order (hatch index, then label), then uncategorized services by label, then
// "Others". Only services in appearing are listed.
func OrderLegend(reg *Registry, appearing map[string]struct{}, enc *Encoding) []entity.LegendEntry {
	blocks := make(map[string][]entity.LegendEntry)
	var uncategorized []entity.LegendEntry
	_, hasOthers := appearing[entity.OthersServiceID]

	for id := range appearing {
		if id == entity.OthersServiceID {
			continue
		}
		entry := entity.LegendEntry{ServiceID: id, Label: reg.Label(id), Style: enc.Style(id)}
		if cat, ok := reg.Category(id); ok {
			entry.Category = cat
			blocks[cat] = append(blocks[cat], entry)
		} else {
			uncategorized = append(uncategorized, entry)
		}
	}

	legend := make([]entity.LegendEntry, 0, len(appearing))
	for _, cat := range reg.Categories() {
		block := blocks[cat]
		sort.Slice(block, func(i, j int) bool {
			a, b := block[i], block[j]
			if a.Style.HatchIndex != b.Style.HatchIndex {
				return a.Style.HatchIndex < b.Style.HatchIndex
			}
			return byLabel(a, b)
		})
		legend = append(legend, block...)
	}

	sort.Slice(uncategorized, func(i, j int) bool { return byLabel(uncategorized[i], uncategorized[j]) })
	legend = append(legend, uncategorized...)

	if hasOthers {
		legend = append(legend, entity.LegendEntry{
			ServiceID: entity.OthersServiceID,
			Label:     reg.Label(entity.OthersServiceID),
			Style:     reg.OthersStyle(),
		})
	}
	return legend
}

func byLabel(a, b entity.LegendEntry) bool {
	if a.Label != b.Label {
		return a.Label < b.Label
	}
	return a.ServiceID < b.ServiceID
}
