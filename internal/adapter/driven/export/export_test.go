package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/diillson/aws-cost-chart/internal/domain/entity"
	"github.com/diillson/aws-cost-chart/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleModel() *entity.ChartModel {
	d1 := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	ec2 := entity.Style{Color: entity.Color{R: 0xff, G: 0x99}, Hatch: "////", HatchIndex: 2}
	s3 := entity.Style{Color: entity.Color{R: 0x3f, G: 0x86, B: 0x24}, Hatch: "", HatchIndex: 0}
	others := entity.Style{Color: entity.Color{R: 0xdd, G: 0xdd, B: 0xdd}, Hatch: "xx", HatchIndex: -1}

	return &entity.ChartModel{
		Panels: []entity.Panel{
			{
				AccountID:   "111111111111",
				DisplayName: "prod",
				Dates:       []time.Time{d1, d2, d3},
				Series: []entity.Series{
					{ServiceID: "AmazonEC2", Label: "EC2", Style: ec2, Values: []float64{10, 12.5, 0}},
					{ServiceID: "AmazonS3", Label: "S3", Style: s3, Values: []float64{1, 1, 2}},
					{ServiceID: entity.OthersServiceID, Label: "Others", Style: others, Values: []float64{0.5, 0, 0.25}},
				},
				Totals: []float64{11.5, 13.5, 2.25},
				YAxis:  entity.YAxis{Max: 13.5},
			},
			{
				AccountID:   "222222222222",
				DisplayName: "empty",
				YAxis:       entity.YAxis{Max: 0.01, Pinned: true},
			},
		},
		Legend: []entity.LegendEntry{
			{ServiceID: "AmazonEC2", Label: "EC2", Category: "Compute", Style: ec2},
			{ServiceID: "AmazonS3", Label: "S3", Category: "Storage", Style: s3},
			{ServiceID: entity.OthersServiceID, Label: "Others", Style: others},
		},
	}
}

func TestNewChartRenderer(t *testing.T) {
	for format, ext := range map[string]string{"": "pdf", "PDF": "pdf", "json": "json", " csv ": "csv"} {
		r, err := NewChartRenderer(format)
		require.NoError(t, err, format)
		assert.Equal(t, ext, r.Extension())
	}

	_, err := NewChartRenderer("png")
	assert.ErrorIs(t, err, types.ErrUnsupportedRender)
}

func TestPDFChartRenderer(t *testing.T) {
	out := filepath.Join(t.TempDir(), "charts", "chart_1.pdf")

	path, err := NewPDFChartRenderer().Render(sampleModel(), out)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestPDFChartRendererEmptyModel(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart_1.pdf")
	_, err := NewPDFChartRenderer().Render(&entity.ChartModel{}, out)
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestPDFChartRendererManyPanels(t *testing.T) {
	base := sampleModel().Panels[0]
	model := &entity.ChartModel{Legend: sampleModel().Legend}
	for i := 0; i < 14; i++ {
		model.Panels = append(model.Panels, base)
	}
	out := filepath.Join(t.TempDir(), "chart_1.pdf")
	_, err := NewPDFChartRenderer().Render(model, out)
	require.NoError(t, err)
}

func TestGridShape(t *testing.T) {
	tests := []struct {
		n, rows, cols int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{3, 3, 1},
		{4, 2, 2},
		{5, 3, 2},
		{12, 6, 2},
		{13, 5, 3},
		{30, 10, 3},
	}
	for _, tt := range tests {
		rows, cols := gridShape(tt.n)
		assert.Equal(t, tt.rows, rows, "rows for %d", tt.n)
		assert.Equal(t, tt.cols, cols, "cols for %d", tt.n)
	}
}

func TestTickLabel(t *testing.T) {
	dates := sampleModel().Panels[0].Dates
	dates = append(dates, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC))

	day, month := tickLabel(dates, 0)
	assert.Equal(t, "30", day)
	assert.Equal(t, "Apr", month)

	day, month = tickLabel(dates, 1)
	assert.Equal(t, "1", day)
	assert.Equal(t, "May", month)

	day, month = tickLabel(dates, 2)
	assert.Equal(t, "2", day)
	assert.Empty(t, month)

	_, month = tickLabel(dates, 3)
	assert.Equal(t, "May", month)
}

func TestAxisScale(t *testing.T) {
	top, step := axisScale(entity.YAxis{Max: 0.01, Pinned: true})
	assert.Equal(t, 0.01, top)
	assert.InDelta(t, 0.0025, step, 1e-12)

	top, step = axisScale(entity.YAxis{Max: 13.5})
	assert.Equal(t, 5.0, step)
	assert.Equal(t, 15.0, top)

	top, _ = axisScale(entity.YAxis{Max: 0})
	assert.Equal(t, 1.0, top)
}

func TestParseHatch(t *testing.T) {
	assert.Equal(t, hatchSpec{forward: 4}, parseHatch("////"))
	assert.Equal(t, hatchSpec{forward: 2, backward: 2}, parseHatch("xx"))
	assert.Equal(t, hatchSpec{vertical: 3, flat: 3}, parseHatch("+++"))
	assert.Equal(t, hatchSpec{backward: 4}, parseHatch(`\\\\`))
	assert.Equal(t, hatchSpec{dots: 3}, parseHatch("..."))
	assert.Equal(t, hatchSpec{rings: 2}, parseHatch("oo"))
	assert.Equal(t, hatchSpec{bigRings: 2}, parseHatch("OO"))
	assert.Equal(t, hatchSpec{stars: 2}, parseHatch("**"))
	assert.Equal(t, hatchSpec{}, parseHatch(""))
}

func TestJSONChartRenderer(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart_1.json")
	path, err := NewJSONChartRenderer().Render(sampleModel(), out)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Panels []struct {
			AccountID string `json:"account_id"`
			Series    []struct {
				ServiceID string `json:"service_id"`
				Style     struct {
					Color string `json:"color"`
					Hatch string `json:"hatch"`
				} `json:"style"`
			} `json:"series"`
		} `json:"panels"`
		Legend []struct {
			ServiceID string `json:"service_id"`
		} `json:"legend"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Len(t, decoded.Panels, 2)
	assert.Equal(t, "111111111111", decoded.Panels[0].AccountID)
	assert.Equal(t, "#ff9900", decoded.Panels[0].Series[0].Style.Color)
	assert.Equal(t, "////", decoded.Panels[0].Series[0].Style.Hatch)
	require.Len(t, decoded.Legend, 3)
	assert.Equal(t, entity.OthersServiceID, decoded.Legend[2].ServiceID)
}

func TestCSVChartRenderer(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart_1.csv")
	path, err := NewCSVChartRenderer().Render(sampleModel(), out)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	// Cabeçalho + 3 datas x 3 séries; o painel vazio não gera linhas.
	require.Len(t, rows, 10)
	assert.Equal(t, []string{"111111111111", "prod", "2024-05-01", "AmazonEC2", "EC2", "12.5", "#ff9900", "////"}, rows[4])
}
