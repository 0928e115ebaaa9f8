package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/diillson/aws-cost-chart/internal/domain/chart"
	"github.com/diillson/aws-cost-chart/internal/domain/entity"
	"github.com/diillson/aws-cost-chart/internal/domain/repository"
	"github.com/diillson/aws-cost-chart/internal/shared/types"
	"github.com/pterm/pterm"
	"golang.org/x/sync/errgroup"
)

// DefaultTimezone is the timezone of the chart title when none is configured.
const DefaultTimezone = "Asia/Tokyo"

// RunOptions controls one batch run.
type RunOptions struct {
	OutputDir   string
	Location    *time.Location
	Concurrency int
	// DryRun renders and prints a summary but does not deliver anything.
	DryRun bool
}

// GroupResult registra o resultado do processamento de um grupo.
type GroupResult struct {
	Index      int
	Name       string
	Channel    string
	Accounts   int
	Records    int
	OutputPath string
	ArchiveURI string
	Delivered  bool
	Err        error
}

// ChartUseCase processa cada grupo de contas: busca custos, monta o modelo,
// renderiza, arquiva e entrega.
type ChartUseCase struct {
	groups   repository.AccountGroupRepository
	records  repository.CostRecordRepository
	builder  *chart.Builder
	renderer repository.ChartRenderer
	delivery repository.DeliveryRepository
	archive  repository.ArchiveRepository
	console  types.ConsoleInterface
	now      func() time.Time

	consoleMu sync.Mutex
}

// NewChartUseCase creates the use case. delivery and archive may be nil.
func NewChartUseCase(
	groups repository.AccountGroupRepository,
	records repository.CostRecordRepository,
	builder *chart.Builder,
	renderer repository.ChartRenderer,
	delivery repository.DeliveryRepository,
	archive repository.ArchiveRepository,
	console types.ConsoleInterface,
) *ChartUseCase {
	uc := &ChartUseCase{
		groups:   groups,
		records:  records,
		renderer: renderer,
		delivery: delivery,
		archive:  archive,
		console:  console,
		now:      time.Now,
	}
	// Avisos do builder passam pelo mesmo lock da barra de progresso.
	uc.builder = builder.WithLogger(consoleLogger{uc: uc})
	return uc
}

// consoleLogger serializa os avisos do chart.Builder com o resto da saída.
type consoleLogger struct {
	uc *ChartUseCase
}

func (l consoleLogger) LogWarning(format string, a ...interface{}) {
	l.uc.withConsole(func() {
		l.uc.console.LogWarning(format, a...)
	})
}

// ChartTitle formats the title posted with each chart.
func ChartTitle(t time.Time) string {
	return fmt.Sprintf("AWS daily cost %s", t.Format("2006-01-02 15:04"))
}

// Run processa todos os grupos. Falhas de um grupo não interrompem os demais;
// ao final, retorna ErrGroupsFailed se algum grupo falhou.
func (uc *ChartUseCase) Run(ctx context.Context, opts RunOptions) ([]GroupResult, error) {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}

	status := uc.console.Status("Loading account groups...")
	groups, err := uc.groups.ListGroups(ctx)
	status.Stop()
	if err != nil {
		return nil, fmt.Errorf("error loading account groups: %w", err)
	}
	if len(groups) == 0 {
		return nil, types.ErrNoAccountGroups
	}
	uc.console.LogInfo("Processing %d account group(s)", len(groups))

	results := make([]GroupResult, len(groups))
	progress := uc.console.ProgressWithTotal(len(groups))

	var g errgroup.Group
	g.SetLimit(opts.Concurrency)
	for i, group := range groups {
		i, group := i, group
		g.Go(func() error {
			results[i] = uc.processGroup(ctx, i+1, group, opts)
			uc.withConsole(func() {
				progress.Increment()
				if err := results[i].Err; err != nil {
					uc.console.LogError("Group %s failed: %v", group.Name, err)
				}
			})
			return nil
		})
	}
	_ = g.Wait()
	progress.Stop()

	uc.displayResults(results)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return results, fmt.Errorf("%w: %d of %d", types.ErrGroupsFailed, failed, len(results))
	}

	uc.console.LogSuccess("All %d group(s) processed", len(results))
	return results, nil
}

func (uc *ChartUseCase) processGroup(ctx context.Context, index int, group entity.AccountGroup, opts RunOptions) GroupResult {
	result := GroupResult{
		Index:    index,
		Name:     group.Name,
		Channel:  group.TargetChannel,
		Accounts: len(group.Accounts),
	}

	records, err := uc.records.Fetch(ctx, group.AccountIDs())
	if err != nil {
		result.Err = fmt.Errorf("fetching cost records: %w", err)
		return result
	}
	result.Records = len(records)

	model := uc.builder.Build(records, group.Accounts)

	outputPath := filepath.Join(opts.OutputDir, fmt.Sprintf("chart_%d.%s", index, uc.renderer.Extension()))
	path, err := uc.renderer.Render(model, outputPath)
	if err != nil {
		result.Err = fmt.Errorf("rendering chart: %w", err)
		return result
	}
	result.OutputPath = path

	if uc.archive != nil {
		uri, err := uc.archive.Archive(ctx, path)
		if err != nil {
			result.Err = fmt.Errorf("archiving chart: %w", err)
			return result
		}
		result.ArchiveURI = uri
	}

	if opts.DryRun {
		uc.withConsole(func() {
			uc.console.DisplayChartSummary(group.Name, model)
		})
		return result
	}

	if uc.delivery != nil {
		// O título usa o horário do envio, não o do início da execução.
		title := ChartTitle(uc.now().In(opts.Location))
		if err := uc.delivery.PostFile(ctx, group.TargetChannel, path, title); err != nil {
			result.Err = fmt.Errorf("delivering chart: %w", err)
			return result
		}
		result.Delivered = true
	}

	return result
}

func (uc *ChartUseCase) withConsole(fn func()) {
	uc.consoleMu.Lock()
	defer uc.consoleMu.Unlock()
	fn()
}

func (uc *ChartUseCase) displayResults(results []GroupResult) {
	table := uc.console.CreateTable()
	table.AddColumn("#")
	table.AddColumn("Group")
	table.AddColumn("Channel")
	table.AddColumn("Accounts")
	table.AddColumn("Records")
	table.AddColumn("Output")
	table.AddColumn("Status")

	for _, r := range results {
		state := pterm.Green("delivered")
		switch {
		case r.Err != nil:
			state = pterm.Red("failed")
		case !r.Delivered:
			state = pterm.Yellow("rendered")
		}
		output := r.OutputPath
		if r.ArchiveURI != "" {
			output = r.ArchiveURI
		}
		table.AddRow(r.Index, r.Name, r.Channel, r.Accounts, r.Records, output, state)
	}

	uc.console.Println(table.Render())
}
