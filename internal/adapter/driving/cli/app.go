package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/diillson/aws-cost-chart/internal/adapter/driven/aws"
	"github.com/diillson/aws-cost-chart/internal/adapter/driven/config"
	"github.com/diillson/aws-cost-chart/internal/adapter/driven/export"
	"github.com/diillson/aws-cost-chart/internal/adapter/driven/sheets"
	"github.com/diillson/aws-cost-chart/internal/adapter/driven/slack"
	"github.com/diillson/aws-cost-chart/internal/application/usecase"
	"github.com/diillson/aws-cost-chart/internal/domain/chart"
	"github.com/diillson/aws-cost-chart/internal/domain/repository"
	"github.com/diillson/aws-cost-chart/internal/shared/types"
	"github.com/diillson/aws-cost-chart/pkg/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// Cost record sources accepted by --source.
const (
	SourceAthena       = "athena"
	SourceCostExplorer = "costexplorer"
)

var defaultLineItemTypes = []string{"Usage", "DiscountedUsage", "SavingsPlanCoveredUsage"}

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
	version    string
	// runFn executa o lote; substituível em testes.
	runFn func(context.Context, *types.CLIArgs) ([]usecase.GroupResult, error)
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, configRepo repository.ConfigRepository, console types.ConsoleInterface) *CLIApp {
	app := &CLIApp{
		configRepo: configRepo,
		console:    console,
		version:    versionStr,
	}
	app.runFn = app.run

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:           "aws-cost-chart",
		Short:         "Daily AWS cost charts per account group, delivered to Slack",
		Version:       formattedVersion,
		RunE:          app.runCommand,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(`{{printf "AWS Cost Chart version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("catalog", "s", "config/services.yml", "Service catalog file (services, categories, colors)")
	flags.StringP("groups-file", "g", "", "Read account groups from a file instead of the spreadsheet")
	flags.String("spreadsheet-id", "", "Google spreadsheet holding the account groups")
	flags.String("spreadsheet-range", "", "Range of the account groups, e.g. Accounts!A2:Z")
	flags.String("credentials-file", "", "Google service account credentials (default: application default credentials)")
	flags.String("source", SourceAthena, "Cost record source: athena or costexplorer")
	flags.StringP("profile", "p", "", "AWS profile to use")
	flags.StringP("region", "r", "", "AWS region (default: "+aws.DefaultRegion+")")
	flags.String("athena-database", "", "Athena database of the CUR table")
	flags.String("athena-table", "", "Athena CUR table")
	flags.String("athena-output-uri", "", "S3 URI for Athena query results")
	flags.StringSlice("line-item-types", defaultLineItemTypes, "CUR line item types to include")
	flags.IntP("days", "t", aws.DefaultDaysRange, "Days of history to chart (7 to 30)")
	flags.Int("utc-offset-hours", 9, "Hours added to UTC usage timestamps before grouping by day")
	flags.IntP("top-n", "n", chart.DefaultTopN, "Services drawn individually per account; the rest become Others")
	flags.Float64("y-axis-floor", chart.DefaultYAxisFloor, "Minimum Y axis upper bound of a panel")
	flags.StringSlice("service-order", nil, "Explicit service order inside categories (comma-separated service ids)")
	flags.StringP("format", "f", export.FormatPDF, "Output format: pdf, json, or csv")
	flags.StringP("dir", "d", "", "Directory to save the charts (default: current directory)")
	flags.String("slack-token", "", "Slack bot token (prefer the SLACK_TOKEN environment variable)")
	flags.String("archive-bucket", "", "Copy every chart to this S3 bucket")
	flags.String("archive-prefix", "aws-cost-chart", "Key prefix for archived charts")
	flags.String("timezone", usecase.DefaultTimezone, "Timezone of the chart title")
	flags.Int("concurrency", 1, "Account groups processed in parallel")
	flags.Bool("dry-run", false, "Render charts and print a summary without posting to Slack")

	rootCmd.AddCommand(app.newLambdaCommand())

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs(cmd *cobra.Command) *types.CLIArgs {
	flags := cmd.Flags()
	str := func(name string) string {
		v, _ := flags.GetString(name)
		return v
	}
	num := func(name string) int {
		v, _ := flags.GetInt(name)
		return v
	}
	list := func(name string) []string {
		v, _ := flags.GetStringSlice(name)
		return v
	}
	yFloor, _ := flags.GetFloat64("y-axis-floor")
	dryRun, _ := flags.GetBool("dry-run")

	return &types.CLIArgs{
		ConfigFile:       str("config-file"),
		ServiceCatalog:   str("catalog"),
		GroupsFile:       str("groups-file"),
		SpreadsheetID:    str("spreadsheet-id"),
		SpreadsheetRange: str("spreadsheet-range"),
		CredentialsFile:  str("credentials-file"),
		Source:           str("source"),
		Profile:          str("profile"),
		Region:           str("region"),
		AthenaDatabase:   str("athena-database"),
		AthenaTable:      str("athena-table"),
		AthenaOutputURI:  str("athena-output-uri"),
		LineItemTypes:    list("line-item-types"),
		DaysRange:        num("days"),
		UTCOffsetHours:   num("utc-offset-hours"),
		TopN:             num("top-n"),
		YAxisFloor:       yFloor,
		ServiceOrder:     list("service-order"),
		Format:           str("format"),
		Dir:              str("dir"),
		SlackToken:       str("slack-token"),
		ArchiveBucket:    str("archive-bucket"),
		ArchivePrefix:    str("archive-prefix"),
		Timezone:         str("timezone"),
		Concurrency:      num("concurrency"),
		DryRun:           dryRun,
	}
}

// resolveArgs combina flags, arquivo de configuração e variáveis de ambiente.
// Precedência: flag explícita > ambiente > arquivo > valor padrão da flag.
func (app *CLIApp) resolveArgs(cmd *cobra.Command, lookup func(string) (string, bool)) (*types.CLIArgs, error) {
	args := app.parseArgs(cmd)
	changed := cmd.Flags().Changed

	if args.ConfigFile != "" {
		cfg, err := app.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrInvalidConfig, err)
		}
		mergeConfig(args, cfg, changed)
	}

	if err := applyEnv(args, lookup, changed); err != nil {
		return nil, err
	}

	if args.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		args.Dir = cwd
	} else {
		absDir, err := filepath.Abs(args.Dir)
		if err != nil {
			return nil, err
		}
		args.Dir = absDir
	}

	return args, nil
}

// mergeConfig copia os valores do arquivo para as flags não informadas.
func mergeConfig(args *types.CLIArgs, cfg *types.Config, changed func(string) bool) {
	setString := func(flag string, dst *string, v string) {
		if v != "" && !changed(flag) {
			*dst = v
		}
	}
	setInt := func(flag string, dst *int, v int) {
		if v != 0 && !changed(flag) {
			*dst = v
		}
	}
	setList := func(flag string, dst *[]string, v []string) {
		if len(v) > 0 && !changed(flag) {
			*dst = v
		}
	}

	setString("catalog", &args.ServiceCatalog, cfg.ServiceCatalog)
	setString("groups-file", &args.GroupsFile, cfg.GroupsFile)
	setString("spreadsheet-id", &args.SpreadsheetID, cfg.SpreadsheetID)
	setString("spreadsheet-range", &args.SpreadsheetRange, cfg.SpreadsheetRange)
	setString("credentials-file", &args.CredentialsFile, cfg.CredentialsFile)
	setString("source", &args.Source, cfg.Source)
	setString("profile", &args.Profile, cfg.Profile)
	setString("region", &args.Region, cfg.Region)
	setString("athena-database", &args.AthenaDatabase, cfg.AthenaDatabase)
	setString("athena-table", &args.AthenaTable, cfg.AthenaTable)
	setString("athena-output-uri", &args.AthenaOutputURI, cfg.AthenaOutputURI)
	setList("line-item-types", &args.LineItemTypes, cfg.LineItemTypes)
	setInt("days", &args.DaysRange, cfg.DaysRange)
	if cfg.UTCOffsetHours != nil && !changed("utc-offset-hours") {
		args.UTCOffsetHours = *cfg.UTCOffsetHours
	}
	setInt("top-n", &args.TopN, cfg.TopN)
	if cfg.YAxisFloor > 0 && !changed("y-axis-floor") {
		args.YAxisFloor = cfg.YAxisFloor
	}
	setList("service-order", &args.ServiceOrder, cfg.ServiceOrder)
	setString("format", &args.Format, cfg.Format)
	setString("dir", &args.Dir, cfg.Dir)
	setString("archive-bucket", &args.ArchiveBucket, cfg.ArchiveBucket)
	setString("archive-prefix", &args.ArchivePrefix, cfg.ArchivePrefix)
	setString("timezone", &args.Timezone, cfg.Timezone)
	setInt("concurrency", &args.Concurrency, cfg.Concurrency)
}

// applyEnv aplica as variáveis de ambiente usadas no modo Lambda.
func applyEnv(args *types.CLIArgs, lookup func(string) (string, bool), changed func(string) bool) error {
	get := func(flag, key string) (string, bool) {
		if changed(flag) {
			return "", false
		}
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	setString := func(flag, key string, dst *string) {
		if v, ok := get(flag, key); ok {
			*dst = v
		}
	}
	setInt := func(flag, key string, dst *int) error {
		v, ok := get(flag, key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer, got %q", types.ErrInvalidConfig, key, v)
		}
		*dst = n
		return nil
	}

	setString("spreadsheet-id", "GOOGLE_SPREADSHEET_ID", &args.SpreadsheetID)
	setString("spreadsheet-range", "GOOGLE_SPREADSHEET_RANGE", &args.SpreadsheetRange)
	setString("athena-database", "ATHENA_DATABASE", &args.AthenaDatabase)
	setString("athena-table", "ATHENA_TABLE", &args.AthenaTable)
	setString("athena-output-uri", "ATHENA_OUTPUT_URI", &args.AthenaOutputURI)
	if v, ok := get("line-item-types", "ATHENA_LINE_ITEM_TYPES"); ok {
		args.LineItemTypes = splitList(v)
	}
	setString("slack-token", "SLACK_TOKEN", &args.SlackToken)
	setString("region", "AWS_REGION", &args.Region)
	setString("catalog", "SERVICE_CATALOG", &args.ServiceCatalog)
	setString("dir", "OUTPUT_DIR", &args.Dir)
	setString("archive-bucket", "ARCHIVE_BUCKET", &args.ArchiveBucket)

	if err := setInt("days", "QUERY_DAYS_RANGE", &args.DaysRange); err != nil {
		return err
	}
	return setInt("top-n", "TOP_N_SERVICES", &args.TopN)
}

func splitList(v string) []string {
	return lo.Compact(lo.Map(strings.Split(v, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner(app.version)

	go version.CheckLatestVersion(cmd.Context(), app.version)

	args, err := app.resolveArgs(cmd, os.LookupEnv)
	if err != nil {
		return err
	}

	_, err = app.runFn(cmd.Context(), args)
	return err
}

// run monta os repositórios a partir dos argumentos e executa o caso de uso.
func (app *CLIApp) run(ctx context.Context, args *types.CLIArgs) ([]usecase.GroupResult, error) {
	catalog, err := app.configRepo.LoadServiceCatalog(args.ServiceCatalog)
	if err != nil {
		return nil, err
	}
	registry, err := chart.NewRegistry(catalog)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(args.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", types.ErrInvalidConfig, args.Timezone, err)
	}

	renderer, err := export.NewChartRenderer(args.Format)
	if err != nil {
		return nil, err
	}

	groups, err := app.groupRepository(ctx, args)
	if err != nil {
		return nil, err
	}

	session, err := aws.NewSession(ctx, args.Profile, args.Region)
	if err != nil {
		return nil, err
	}
	if account, err := session.CallerAccount(ctx); err == nil {
		app.console.LogInfo("Using AWS account %s", account)
	} else {
		app.console.LogWarning("Could not resolve the caller account: %v", err)
	}

	records, err := recordRepository(session.Config(), args)
	if err != nil {
		return nil, err
	}

	var delivery repository.DeliveryRepository
	switch {
	case args.DryRun:
	case args.SlackToken == "":
		app.console.LogWarning("No Slack token configured; charts will only be saved to %s", args.Dir)
	default:
		delivery, err = slack.NewNotifier(args.SlackToken)
		if err != nil {
			return nil, err
		}
	}

	var archive repository.ArchiveRepository
	if args.ArchiveBucket != "" {
		archive = aws.NewS3ArchiveRepository(session.Config(), args.ArchiveBucket, args.ArchivePrefix)
	}

	builder := chart.NewBuilder(registry, chart.Options{
		TopN:         args.TopN,
		ServiceOrder: args.ServiceOrder,
		YAxisFloor:   args.YAxisFloor,
	}, app.console)

	uc := usecase.NewChartUseCase(groups, records, builder, renderer, delivery, archive, app.console)
	return uc.Run(ctx, usecase.RunOptions{
		OutputDir:   args.Dir,
		Location:    loc,
		Concurrency: args.Concurrency,
		DryRun:      args.DryRun,
	})
}

func (app *CLIApp) groupRepository(ctx context.Context, args *types.CLIArgs) (repository.AccountGroupRepository, error) {
	switch {
	case args.GroupsFile != "":
		return config.NewFileAccountGroupRepository(args.GroupsFile), nil
	case args.SpreadsheetID != "":
		return sheets.NewAccountGroupRepository(ctx, args.SpreadsheetID, args.SpreadsheetRange, args.CredentialsFile)
	default:
		return nil, types.ErrNoGroupSource
	}
}

func recordRepository(cfg awssdk.Config, args *types.CLIArgs) (repository.CostRecordRepository, error) {
	switch strings.ToLower(args.Source) {
	case "", SourceAthena:
		return aws.NewAthenaRecordRepository(cfg, aws.AthenaParams{
			Database:       args.AthenaDatabase,
			Table:          args.AthenaTable,
			OutputURI:      args.AthenaOutputURI,
			LineItemTypes:  args.LineItemTypes,
			DaysRange:      args.DaysRange,
			UTCOffsetHours: args.UTCOffsetHours,
		})
	case SourceCostExplorer:
		return aws.NewCostExplorerRecordRepository(cfg, args.DaysRange), nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrNoRecordSource, args.Source)
	}
}
