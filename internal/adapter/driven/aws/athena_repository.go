package aws

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	athenaTypes "github.com/aws/aws-sdk-go-v2/service/athena/types"
	"github.com/diillson/aws-cost-chart/internal/domain/accounts"
	"github.com/diillson/aws-cost-chart/internal/domain/entity"
	"github.com/diillson/aws-cost-chart/internal/domain/repository"
	"github.com/diillson/aws-cost-chart/internal/shared/types"
)

const (
	// DefaultDaysRange is the query window when none is configured.
	DefaultDaysRange = 14
	minDaysRange     = 7
	maxDaysRange     = 30
)

var lineItemTypeRegex = regexp.MustCompile(`^[A-Za-z]+$`)

// AthenaParams configura a consulta ao CUR 2.0.
type AthenaParams struct {
	Database       string
	Table          string
	OutputURI      string
	LineItemTypes  []string
	DaysRange      int
	UTCOffsetHours int
	PollInterval   time.Duration
}

type athenaAPI interface {
	StartQueryExecution(ctx context.Context, params *athena.StartQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.StartQueryExecutionOutput, error)
	GetQueryExecution(ctx context.Context, params *athena.GetQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.GetQueryExecutionOutput, error)
	athena.GetQueryResultsAPIClient
}

// AthenaRecordRepository busca custos diários por serviço no CUR via Athena.
type AthenaRecordRepository struct {
	client athenaAPI
	params AthenaParams
}

// NewAthenaRecordRepository cria o repositório a partir da configuração AWS.
func NewAthenaRecordRepository(cfg aws.Config, params AthenaParams) (repository.CostRecordRepository, error) {
	repo, err := newAthenaRecordRepository(athena.NewFromConfig(cfg), params)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func newAthenaRecordRepository(client athenaAPI, params AthenaParams) (*AthenaRecordRepository, error) {
	if params.Database == "" || params.Table == "" || params.OutputURI == "" {
		return nil, fmt.Errorf("%w: athena database, table and output URI are required", types.ErrInvalidConfig)
	}
	if len(params.LineItemTypes) == 0 {
		return nil, fmt.Errorf("%w: at least one line item type is required", types.ErrInvalidConfig)
	}
	for _, lit := range params.LineItemTypes {
		if !lineItemTypeRegex.MatchString(strings.TrimSpace(lit)) {
			return nil, fmt.Errorf("%w: invalid line item type %q", types.ErrInvalidConfig, lit)
		}
	}
	params.DaysRange = ClampDaysRange(params.DaysRange)
	if params.PollInterval <= 0 {
		params.PollInterval = time.Second
	}
	return &AthenaRecordRepository{client: client, params: params}, nil
}

// ClampDaysRange limita a janela de consulta a [7, 30] dias; zero usa o padrão.
func ClampDaysRange(days int) int {
	if days == 0 {
		return DefaultDaysRange
	}
	if days < minDaysRange {
		return minDaysRange
	}
	if days > maxDaysRange {
		return maxDaysRange
	}
	return days
}

// Fetch executa a consulta, aguarda a conclusão e pagina todos os resultados.
func (r *AthenaRecordRepository) Fetch(ctx context.Context, accountIDs []string) ([]entity.CostRecord, error) {
	query, ok := r.buildQuery(accountIDs)
	if !ok {
		return nil, nil
	}

	start, err := r.client.StartQueryExecution(ctx, &athena.StartQueryExecutionInput{
		QueryString:           aws.String(query),
		QueryExecutionContext: &athenaTypes.QueryExecutionContext{Database: aws.String(r.params.Database)},
		ResultConfiguration:   &athenaTypes.ResultConfiguration{OutputLocation: aws.String(r.params.OutputURI)},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: start query: %v", types.ErrQueryFailed, err)
	}
	executionID := start.QueryExecutionId

	if err := r.waitForQuery(ctx, executionID); err != nil {
		return nil, err
	}

	var records []entity.CostRecord
	header := true
	paginator := athena.NewGetQueryResultsPaginator(r.client, &athena.GetQueryResultsInput{QueryExecutionId: executionID})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: get results: %v", types.ErrQueryFailed, err)
		}
		if page.ResultSet == nil {
			continue
		}
		for _, row := range page.ResultSet.Rows {
			// A primeira linha do resultado é o cabeçalho.
			if header {
				header = false
				continue
			}
			if rec, ok := parseAthenaRow(row); ok {
				records = append(records, rec)
			}
		}
	}

	return records, nil
}

func (r *AthenaRecordRepository) waitForQuery(ctx context.Context, executionID *string) error {
	ticker := time.NewTicker(r.params.PollInterval)
	defer ticker.Stop()

	for {
		status, err := r.client.GetQueryExecution(ctx, &athena.GetQueryExecutionInput{QueryExecutionId: executionID})
		if err != nil {
			return fmt.Errorf("%w: get execution: %v", types.ErrQueryFailed, err)
		}
		if status.QueryExecution != nil && status.QueryExecution.Status != nil {
			st := status.QueryExecution.Status
			switch st.State {
			case athenaTypes.QueryExecutionStateSucceeded:
				return nil
			case athenaTypes.QueryExecutionStateFailed, athenaTypes.QueryExecutionStateCancelled:
				return fmt.Errorf("%w: %s %s", types.ErrQueryFailed, st.State, aws.ToString(st.StateChangeReason))
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (r *AthenaRecordRepository) buildQuery(accountIDs []string) (string, bool) {
	ids := make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		id = strings.TrimSpace(id)
		if accounts.IsAccountID(id) {
			ids = append(ids, fmt.Sprintf("'%s'", id))
		}
	}
	if len(ids) == 0 {
		return "", false
	}

	lineItemTypes := make([]string, 0, len(r.params.LineItemTypes))
	for _, lit := range r.params.LineItemTypes {
		lineItemTypes = append(lineItemTypes, fmt.Sprintf("'%s'", strings.TrimSpace(lit)))
	}

	offset := r.params.UTCOffsetHours
	query := fmt.Sprintf(`
		SELECT
			date_format(date_add('hour', %d, line_item_usage_start_date), '%%Y-%%m-%%d') AS date,
			line_item_usage_account_id AS account_id,
			line_item_product_code AS service,
			SUM(line_item_unblended_cost) AS cost
		FROM "%s"
		WHERE
			line_item_usage_account_id IN (%s)
			AND line_item_usage_start_date >= date_add('day', -%d, date(date_add('hour', %d, current_timestamp)))
			AND line_item_line_item_type IN (%s)
		GROUP BY 1, 2, 3
		ORDER BY 1, 2
	`, offset, r.params.Table, strings.Join(ids, ","), r.params.DaysRange, offset, strings.Join(lineItemTypes, ","))

	return query, true
}

func parseAthenaRow(row athenaTypes.Row) (entity.CostRecord, bool) {
	if len(row.Data) < 4 {
		return entity.CostRecord{}, false
	}
	cost, err := strconv.ParseFloat(aws.ToString(row.Data[3].VarCharValue), 64)
	if err != nil {
		return entity.CostRecord{}, false
	}
	return entity.CostRecord{
		Date:      aws.ToString(row.Data[0].VarCharValue),
		AccountID: aws.ToString(row.Data[1].VarCharValue),
		ServiceID: aws.ToString(row.Data[2].VarCharValue),
		Cost:      cost,
	}, true
}
