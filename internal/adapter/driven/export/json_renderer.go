package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diillson/aws-cost-chart/internal/domain/entity"
)

// JSONChartRenderer grava o modelo do gráfico como JSON, para consumo por
// outros renderizadores.
type JSONChartRenderer struct{}

// NewJSONChartRenderer creates a JSON renderer.
func NewJSONChartRenderer() *JSONChartRenderer {
	return &JSONChartRenderer{}
}

// Extension implements repository.ChartRenderer.
func (r *JSONChartRenderer) Extension() string { return FormatJSON }

// Render implements repository.ChartRenderer.
func (r *JSONChartRenderer) Render(model *entity.ChartModel, outputPath string) (string, error) {
	if err := prepareOutput(outputPath); err != nil {
		return "", err
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(model); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputPath)
}
