package entity

import (
	"fmt"
	"time"
)

// OthersServiceID is the synthetic service id of the "Others" stack segment.
// It cannot collide with a real service identifier from the cost source.
const OthersServiceID = "__others__"

// Color is an sRGB color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalText encodes the color as its hex form.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// Style is the visual encoding of one service.
type Style struct {
	Color Color  `json:"color"`
	Hatch string `json:"hatch"`
	// HatchIndex is the position in the hatch cycle, or -1 for services
	// drawn without a hatch (uncategorized services and "Others").
	HatchIndex int `json:"hatch_index"`
}

// Series is one stack segment of a panel.
type Series struct {
	ServiceID string    `json:"service_id"`
	Label     string    `json:"label"`
	Style     Style     `json:"style"`
	Values    []float64 `json:"values"`
}

// YAxis describes the value axis of a panel. When Pinned is false the
// renderer scales the axis to the data and Max is the data maximum.
type YAxis struct {
	Max    float64 `json:"max"`
	Pinned bool    `json:"pinned"`
}

// Panel is one account's stacked-bar chart.
type Panel struct {
	AccountID   string      `json:"account_id"`
	DisplayName string      `json:"display_name"`
	Dates       []time.Time `json:"dates"`
	// Series is in stack order, bottom first; "Others" is always last.
	Series []Series `json:"series"`
	// Totals holds the per-date sum over every service of the account.
	Totals []float64 `json:"totals"`
	YAxis  YAxis     `json:"y_axis"`
}

// Title returns the panel heading.
func (p Panel) Title() string {
	return fmt.Sprintf("%s - %s", p.DisplayName, p.AccountID)
}

// LegendEntry is one item of the merged legend.
type LegendEntry struct {
	ServiceID string `json:"service_id"`
	Label     string `json:"label"`
	Category  string `json:"category,omitempty"`
	Style     Style  `json:"style"`
}

// ChartModel is the renderer-agnostic description of a multi-account cost
// chart. It is built once per group and must be treated as read-only.
type ChartModel struct {
	Panels []Panel       `json:"panels"`
	Legend []LegendEntry `json:"legend"`
}

// IsEmpty reports whether no panel has any data.
func (m *ChartModel) IsEmpty() bool {
	for _, p := range m.Panels {
		if len(p.Dates) > 0 {
			return false
		}
	}
	return true
}
