package console

import (
	"fmt"
	"math"
	"strings"

	"github.com/diillson/aws-cost-chart/internal/domain/entity"
	"github.com/diillson/aws-cost-chart/internal/shared/types"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// Console é uma implementação do ConsoleInterface.
type Console struct{}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Cores predefinidas para uso consistente
var (
	BrightGreen  = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightYellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	BrightCyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
	}
}

// progressHandle é uma implementação do ProgressHandle.
type progressHandle struct {
	bar *pterm.ProgressbarPrinter
}

func (c *Console) ProgressWithTotal(total int) types.ProgressHandle {
	bar, _ := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle("Building cost charts").
		WithShowElapsedTime(true).
		WithShowCount(true).
		WithRemoveWhenDone(false). // Manter a barra após concluir
		Start()
	return &progressHandle{bar: bar}
}

// Increment incrementa a barra de progresso.
func (h *progressHandle) Increment() {
	if h.bar != nil {
		h.bar.Increment()
	}
}

// Stop pára a barra de progresso.
func (h *progressHandle) Stop() {
	if h.bar != nil {
		h.bar.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	// Convertemos cada célula para string
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	// Use o pterm para criar uma tabela visualmente agradável
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

// DisplayChartSummary exibe um resumo em tabela de cada painel do gráfico.
func (c *Console) DisplayChartSummary(groupName string, model *entity.ChartModel) {
	if model == nil || model.IsEmpty() {
		pterm.Warning.Printfln("No cost data for group %s", groupName)
		return
	}

	for _, panel := range model.Panels {
		tableData := pterm.TableData{
			{"Service", "Style", "Peak", "Total", ""},
		}

		var panelTotal float64
		for _, t := range panel.Totals {
			panelTotal += t
		}

		for _, s := range panel.Series {
			peak, total := seriesPeakAndTotal(s.Values)
			share := 0.0
			if panelTotal > 0 {
				share = total / panelTotal
			}
			bar := strings.Repeat("█", int(math.Round(share*30)))
			tableData = append(tableData, []string{
				s.Label,
				styleSwatch(s.Style),
				fmt.Sprintf("$%.2f", peak),
				fmt.Sprintf("$%.2f", total),
				rgbStyle(s.Style.Color).Sprint(bar),
			})
		}

		if len(panel.Series) == 0 {
			tableData = append(tableData, []string{"(no data)", "", "", "", ""})
		}

		renderedTable, _ := pterm.DefaultTable.WithHasHeader().WithData(tableData).Srender()

		axis := "auto"
		if panel.YAxis.Pinned {
			axis = BrightYellow(fmt.Sprintf("pinned at $%.2f", panel.YAxis.Max))
		}
		footer := fmt.Sprintf("%d days | total %s | y-axis %s",
			len(panel.Dates), BrightGreen(fmt.Sprintf("$%.2f", panelTotal)), axis)

		box := pterm.DefaultBox.
			WithTitle(fmt.Sprintf("%s | %s", groupName, panel.Title())).
			WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
			Sprint(renderedTable + "\n" + footer)

		fmt.Println("\n" + box)
	}

	legend := make([]string, 0, len(model.Legend))
	for _, e := range model.Legend {
		legend = append(legend, fmt.Sprintf("%s %s", rgbStyle(e.Style.Color).Sprint("■"), e.Label))
	}
	fmt.Println(BrightCyan("Legend: ") + strings.Join(legend, "  "))
}

func seriesPeakAndTotal(values []float64) (peak, total float64) {
	for _, v := range values {
		total += v
		if v > peak {
			peak = v
		}
	}
	return peak, total
}

func styleSwatch(style entity.Style) string {
	swatch := style.Color.Hex()
	if style.Hatch != "" {
		swatch += " " + style.Hatch
	}
	return swatch
}

func rgbStyle(c entity.Color) pterm.RGB {
	return pterm.NewRGB(c.R, c.G, c.B)
}
