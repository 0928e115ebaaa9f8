package chart

import (
	"testing"
	"time"

	"github.com/diillson/aws-cost-chart/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAggregateSumsDuplicates(t *testing.T) {
	accounts := []entity.Account{{ID: "111111111111", DisplayName: "dev"}}
	records := []entity.CostRecord{
		{Date: "2025-05-02", AccountID: "111111111111", ServiceID: "AmazonEC2", Cost: 1.5},
		{Date: "2025-05-01", AccountID: "111111111111", ServiceID: "AmazonEC2", Cost: 2},
		{Date: "2025-05-02", AccountID: "111111111111", ServiceID: "AmazonEC2", Cost: 0.5},
		{Date: "2025-05-02", AccountID: "111111111111", ServiceID: "AmazonS3", Cost: 3},
	}

	agg := Aggregate(records, accounts, nil)
	s := agg.Account("111111111111")
	require.NotNil(t, s)

	assert.Equal(t, []time.Time{day("2025-05-01"), day("2025-05-02")}, s.Dates())
	assert.InDelta(t, 2.0, s.Cost(day("2025-05-02"), "AmazonEC2"), 1e-9)
	assert.InDelta(t, 5.0, s.DailyTotal(day("2025-05-02")), 1e-9)
	assert.InDelta(t, 7.0, s.Total(), 1e-9)
	assert.Equal(t, 0.0, s.Cost(day("2025-05-01"), "AmazonS3"))

	totals := s.ServiceTotals()
	assert.InDelta(t, 4.0, totals["AmazonEC2"], 1e-9)
	assert.InDelta(t, 3.0, totals["AmazonS3"], 1e-9)

	peaks := s.Peaks()
	assert.InDelta(t, 2.0, peaks["AmazonEC2"], 1e-9)
	assert.InDelta(t, 3.0, peaks["AmazonS3"], 1e-9)
}

func TestAggregateDropsUnrequestedAndMalformed(t *testing.T) {
	accounts := []entity.Account{{ID: "111111111111", DisplayName: "dev"}}
	records := []entity.CostRecord{
		{Date: "2025-05-01", AccountID: "111111111111", ServiceID: "AmazonEC2", Cost: 1},
		{Date: "2025-05-01", AccountID: "999999999999", ServiceID: "AmazonEC2", Cost: 100},
		{Date: "05/01/2025", AccountID: "111111111111", ServiceID: "AmazonEC2", Cost: 100},
		{Date: "", AccountID: "111111111111", ServiceID: "AmazonS3", Cost: 100},
	}
	log := &recordingLogger{}

	agg := Aggregate(records, accounts, log)

	assert.Equal(t, 1, agg.Unrequested)
	assert.Equal(t, 2, agg.Malformed)
	assert.Len(t, log.warnings, 2)
	assert.Nil(t, agg.Account("999999999999"))
	assert.InDelta(t, 1.0, agg.Account("111111111111").Total(), 1e-9)
}

func TestAggregateKeepsAccountOrderAndDeduplicates(t *testing.T) {
	accounts := []entity.Account{
		{ID: "222222222222", DisplayName: "prod"},
		{ID: "111111111111", DisplayName: "dev"},
		{ID: "222222222222", DisplayName: "prod again"},
	}

	agg := Aggregate(nil, accounts, nil)

	require.Len(t, agg.Accounts, 2)
	assert.Equal(t, "222222222222", agg.Accounts[0].Account.ID)
	assert.Equal(t, "prod", agg.Accounts[0].Account.DisplayName)
	assert.Equal(t, "111111111111", agg.Accounts[1].Account.ID)
	assert.Empty(t, agg.Accounts[0].Dates())
}

func TestGlobalPeaksTakesMaxAcrossAccounts(t *testing.T) {
	accounts := []entity.Account{{ID: "a"}, {ID: "b"}}
	records := []entity.CostRecord{
		{Date: "2025-05-01", AccountID: "a", ServiceID: "AmazonEC2", Cost: 6},
		{Date: "2025-05-01", AccountID: "b", ServiceID: "AmazonEC2", Cost: 7},
		{Date: "2025-05-02", AccountID: "a", ServiceID: "AmazonEC2", Cost: 3},
		{Date: "2025-05-02", AccountID: "a", ServiceID: "AmazonEC2", Cost: 2},
	}

	peaks := Aggregate(records, accounts, nil).GlobalPeaks()

	// Not 13 (summed across accounts on the same day).
	assert.InDelta(t, 7.0, peaks["AmazonEC2"], 1e-9)
}
