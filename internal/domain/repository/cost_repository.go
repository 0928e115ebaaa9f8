package repository

import (
	"context"

	"github.com/diillson/aws-cost-chart/internal/domain/entity"
)

// CostRecordRepository fetches daily per-service cost rows for a set of
// accounts. An empty result is not an error.
type CostRecordRepository interface {
	Fetch(ctx context.Context, accountIDs []string) ([]entity.CostRecord, error)
}

// AccountGroupRepository lists the account groups to chart.
type AccountGroupRepository interface {
	ListGroups(ctx context.Context) ([]entity.AccountGroup, error)
}
