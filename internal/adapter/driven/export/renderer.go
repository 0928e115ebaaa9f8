package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/aws-cost-chart/internal/domain/repository"
	"github.com/diillson/aws-cost-chart/internal/shared/types"
)

// Output formats accepted by NewChartRenderer.
const (
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// NewChartRenderer returns the renderer for the given output format.
func NewChartRenderer(format string) (repository.ChartRenderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatPDF:
		return NewPDFChartRenderer(), nil
	case FormatJSON:
		return NewJSONChartRenderer(), nil
	case FormatCSV:
		return NewCSVChartRenderer(), nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnsupportedRender, format)
	}
}

// prepareOutput garante que o diretório de saída existe.
func prepareOutput(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	return nil
}
