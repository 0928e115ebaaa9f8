package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/diillson/aws-cost-chart/internal/domain/chart"
	"github.com/diillson/aws-cost-chart/internal/domain/entity"
)

// CSVChartRenderer writes one row per panel, date and displayed series.
type CSVChartRenderer struct{}

// NewCSVChartRenderer creates a CSV renderer.
func NewCSVChartRenderer() *CSVChartRenderer {
	return &CSVChartRenderer{}
}

// Extension implements repository.ChartRenderer.
func (r *CSVChartRenderer) Extension() string { return FormatCSV }

// Render implements repository.ChartRenderer.
func (r *CSVChartRenderer) Render(model *entity.ChartModel, outputPath string) (string, error) {
	if err := prepareOutput(outputPath); err != nil {
		return "", err
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	headers := []string{"Account ID", "Account Name", "Date", "Service", "Label", "Cost", "Color", "Hatch"}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, panel := range model.Panels {
		for i, date := range panel.Dates {
			for _, s := range panel.Series {
				row := []string{
					panel.AccountID,
					panel.DisplayName,
					date.Format(chart.DateLayout),
					s.ServiceID,
					s.Label,
					strconv.FormatFloat(s.Values[i], 'f', -1, 64),
					s.Style.Color.Hex(),
					s.Style.Hatch,
				}
				if err := writer.Write(row); err != nil {
					return "", fmt.Errorf("error writing CSV row: %w", err)
				}
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV data: %w", err)
	}

	return filepath.Abs(outputPath)
}
