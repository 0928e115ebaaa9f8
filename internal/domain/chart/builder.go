package chart

import (
	"sort"

	"github.com/diillson/aws-cost-chart/internal/domain/entity"
)

const (
	// DefaultTopN is the number of services drawn individually per panel.
	DefaultTopN = 8
	// DefaultYAxisFloor is the smallest Y-axis upper bound of a panel.
	DefaultYAxisFloor = 0.01
)

// Options tunes a Builder.
type Options struct {
	// TopN services are drawn individually; the rest fold into "Others".
	TopN int
	// ServiceOrder optionally fixes the order of services inside a category
	// and breaks ranking ties.
	ServiceOrder []string
	// YAxisFloor pins the Y axis of panels whose daily total never reaches it.
	YAxisFloor float64
}

// Builder assembles chart models. It holds no per-run state and can be used
// from several goroutines.
type Builder struct {
	registry *Registry
	opts     Options
	log      Logger
}

// NewBuilder creates a builder. Zero or negative options take their defaults.
func NewBuilder(registry *Registry, opts Options, log Logger) *Builder {
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	if opts.YAxisFloor <= 0 {
		opts.YAxisFloor = DefaultYAxisFloor
	}
	if log == nil {
		log = nopLogger{}
	}
	opts.ServiceOrder = append([]string(nil), opts.ServiceOrder...)
	return &Builder{registry: registry, opts: opts, log: log}
}

// WithLogger returns a copy of the builder that reports dropped input to log.
func (b *Builder) WithLogger(log Logger) *Builder {
	if log == nil {
		log = nopLogger{}
	}
	nb := *b
	nb.log = log
	return &nb
}

// Options returns the effective options.
func (b *Builder) Options() Options {
	return b.opts
}

// Build produces the chart model for one group of accounts. There is one
// panel per distinct requested account, in the requested order, even when an
// account has no records.
func (b *Builder) Build(records []entity.CostRecord, accounts []entity.Account) *entity.ChartModel {
	agg := Aggregate(records, accounts, b.log)

	globalPeaks := agg.GlobalPeaks()
	ranking := Rank(globalPeaks, b.opts.ServiceOrder)
	enc := Encode(b.registry, ranking, ranking, b.opts.ServiceOrder)

	model := &entity.ChartModel{Panels: make([]entity.Panel, 0, len(agg.Accounts))}
	appearing := make(map[string]struct{})
	for _, series := range agg.Accounts {
		panel := b.buildPanel(series, enc)
		for _, s := range panel.Series {
			appearing[s.ServiceID] = struct{}{}
		}
		model.Panels = append(model.Panels, panel)
	}
	model.Legend = OrderLegend(b.registry, appearing, enc)

	return model
}

func (b *Builder) buildPanel(series *AccountSeries, enc *Encoding) entity.Panel {
	panel := entity.Panel{
		AccountID:   series.Account.ID,
		DisplayName: series.Account.DisplayName,
		Dates:       series.Dates(),
	}

	ranking := Rank(series.Peaks(), b.opts.ServiceOrder)
	selected, rest := TopN(ranking, b.opts.TopN)

	panel.Series = make([]entity.Series, 0, len(selected)+1)
	for _, id := range selected {
		values := make([]float64, len(panel.Dates))
		for i, d := range panel.Dates {
			values[i] = series.Cost(d, id)
		}
		panel.Series = append(panel.Series, entity.Series{
			ServiceID: id,
			Label:     b.registry.Label(id),
			Style:     enc.Style(id),
			Values:    values,
		})
	}

	if len(rest) > 0 {
		// Sum in a fixed order so that repeated runs give identical floats.
		folded := append([]string(nil), rest...)
		sort.Strings(folded)
		values := make([]float64, len(panel.Dates))
		for i, d := range panel.Dates {
			for _, id := range folded {
				values[i] += series.Cost(d, id)
			}
		}
		panel.Series = append(panel.Series, entity.Series{
			ServiceID: entity.OthersServiceID,
			Label:     b.registry.Label(entity.OthersServiceID),
			Style:     enc.Style(entity.OthersServiceID),
			Values:    values,
		})
	}

	panel.Totals = make([]float64, len(panel.Dates))
	var maxTotal float64
	for i := range panel.Dates {
		for _, s := range panel.Series {
			panel.Totals[i] += s.Values[i]
		}
		if panel.Totals[i] > maxTotal {
			maxTotal = panel.Totals[i]
		}
	}

	if maxTotal < b.opts.YAxisFloor {
		panel.YAxis = entity.YAxis{Max: b.opts.YAxisFloor, Pinned: true}
	} else {
		panel.YAxis = entity.YAxis{Max: maxTotal}
	}

	return panel
}
