package aws

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/diillson/aws-cost-chart/internal/domain/accounts"
	"github.com/diillson/aws-cost-chart/internal/domain/chart"
	"github.com/diillson/aws-cost-chart/internal/domain/entity"
	"github.com/diillson/aws-cost-chart/internal/domain/repository"
	"github.com/diillson/aws-cost-chart/internal/shared/types"
)

const unblendedCost = "UnblendedCost"

type costExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

// CostExplorerRecordRepository lê custos diários por conta e serviço do
// Cost Explorer, para contas sem export CUR configurado.
type CostExplorerRecordRepository struct {
	client    costExplorerAPI
	daysRange int
	now       func() time.Time
}

// NewCostExplorerRecordRepository cria o repositório. O Cost Explorer só
// responde em us-east-1.
func NewCostExplorerRecordRepository(cfg aws.Config, daysRange int) repository.CostRecordRepository {
	regionalCfg := cfg.Copy()
	regionalCfg.Region = "us-east-1"
	return newCostExplorerRecordRepository(costexplorer.NewFromConfig(regionalCfg), daysRange, time.Now)
}

func newCostExplorerRecordRepository(client costExplorerAPI, daysRange int, now func() time.Time) *CostExplorerRecordRepository {
	return &CostExplorerRecordRepository{
		client:    client,
		daysRange: ClampDaysRange(daysRange),
		now:       now,
	}
}

// Fetch agrupa por LINKED_ACCOUNT e SERVICE e segue o NextPageToken.
func (r *CostExplorerRecordRepository) Fetch(ctx context.Context, accountIDs []string) ([]entity.CostRecord, error) {
	var ids []string
	for _, id := range accountIDs {
		id = strings.TrimSpace(id)
		if accounts.IsAccountID(id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	today := r.now().UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -r.daysRange)

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(start.Format(chart.DateLayout)),
			End:   aws.String(today.Format(chart.DateLayout)),
		},
		Granularity: ceTypes.GranularityDaily,
		Metrics:     []string{unblendedCost},
		GroupBy: []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("LINKED_ACCOUNT")},
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")},
		},
		Filter: &ceTypes.Expression{
			Dimensions: &ceTypes.DimensionValues{
				Key:    ceTypes.DimensionLinkedAccount,
				Values: ids,
			},
		},
	}

	var records []entity.CostRecord
	for {
		result, err := r.client.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("%w: cost explorer: %v", types.ErrQueryFailed, err)
		}

		for _, byTime := range result.ResultsByTime {
			if byTime.TimePeriod == nil {
				continue
			}
			date := aws.ToString(byTime.TimePeriod.Start)
			for _, group := range byTime.Groups {
				if len(group.Keys) < 2 {
					continue
				}
				metric, ok := group.Metrics[unblendedCost]
				if !ok {
					continue
				}
				cost, err := strconv.ParseFloat(aws.ToString(metric.Amount), 64)
				if err != nil {
					continue
				}
				records = append(records, entity.CostRecord{
					Date:      date,
					AccountID: group.Keys[0],
					ServiceID: group.Keys[1],
					Cost:      cost,
				})
			}
		}

		if result.NextPageToken == nil || *result.NextPageToken == "" {
			break
		}
		input.NextPageToken = result.NextPageToken
	}

	return records, nil
}
