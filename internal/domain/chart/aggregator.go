package chart

import (
	"sort"
	"time"

	"github.com/diillson/aws-cost-chart/internal/domain/entity"
	"github.com/samber/lo"
)

// DateLayout is the format of CostRecord.Date.
const DateLayout = "2006-01-02"

// Logger receives warnings about dropped input. types.ConsoleInterface
// satisfies it.
type Logger interface {
	LogWarning(format string, a ...interface{})
}

type nopLogger struct{}

func (nopLogger) LogWarning(string, ...interface{}) {}

// AccountSeries holds one account's costs summed by day and service.
type AccountSeries struct {
	Account entity.Account
	daily   map[time.Time]map[string]float64
}

func newAccountSeries(account entity.Account) *AccountSeries {
	return &AccountSeries{Account: account, daily: make(map[time.Time]map[string]float64)}
}

func (s *AccountSeries) add(date time.Time, serviceID string, cost float64) {
	byService, ok := s.daily[date]
	if !ok {
		byService = make(map[string]float64)
		s.daily[date] = byService
	}
	byService[serviceID] += cost
}

// Dates returns every day with at least one record, ascending.
func (s *AccountSeries) Dates() []time.Time {
	dates := lo.Keys(s.daily)
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Cost returns the summed cost of a service on a day, zero when absent.
func (s *AccountSeries) Cost(date time.Time, serviceID string) float64 {
	return s.daily[date][serviceID]
}

// DailyTotal returns the account's total for a day.
func (s *AccountSeries) DailyTotal(date time.Time) float64 {
	var total float64
	for _, c := range s.daily[date] {
		total += c
	}
	return total
}

// Total returns the account's total over the whole range.
func (s *AccountSeries) Total() float64 {
	var total float64
	for date := range s.daily {
		total += s.DailyTotal(date)
	}
	return total
}

// ServiceTotals returns each service's total over the whole range.
func (s *AccountSeries) ServiceTotals() map[string]float64 {
	totals := make(map[string]float64)
	for _, byService := range s.daily {
		for id, c := range byService {
			totals[id] += c
		}
	}
	return totals
}

// Peaks returns each service's peak single-day cost.
func (s *AccountSeries) Peaks() map[string]float64 {
	peaks := make(map[string]float64)
	for _, byService := range s.daily {
		for id, c := range byService {
			if cur, seen := peaks[id]; !seen || c > cur {
				peaks[id] = c
			}
		}
	}
	return peaks
}

// Aggregation is the result of Aggregate.
type Aggregation struct {
	// Accounts follows the requested account order, without duplicates.
	Accounts []*AccountSeries
	// Unrequested counts records dropped because their account was not requested.
	Unrequested int
	// Malformed counts records dropped because their date did not parse.
	Malformed int

	byID map[string]*AccountSeries
}

// Account returns the series of an account, or nil when it was not requested.
func (a *Aggregation) Account(accountID string) *AccountSeries {
	return a.byID[accountID]
}

// GlobalPeaks returns each service's peak single-day cost across all
// accounts. The peak is taken per account and then maximized, never summed
// across accounts.
func (a *Aggregation) GlobalPeaks() map[string]float64 {
	peaks := make(map[string]float64)
	for _, s := range a.Accounts {
		for id, p := range s.Peaks() {
			if cur, seen := peaks[id]; !seen || p > cur {
				peaks[id] = p
			}
		}
	}
	return peaks
}

// Aggregate groups records by account, day and service. Records for accounts
// outside the requested list are dropped silently; records with a malformed
// date are dropped and reported to log.
func Aggregate(records []entity.CostRecord, accounts []entity.Account, log Logger) *Aggregation {
	if log == nil {
		log = nopLogger{}
	}

	agg := &Aggregation{byID: make(map[string]*AccountSeries, len(accounts))}
	for _, account := range accounts {
		if _, dup := agg.byID[account.ID]; dup {
			continue
		}
		s := newAccountSeries(account)
		agg.byID[account.ID] = s
		agg.Accounts = append(agg.Accounts, s)
	}

	for _, rec := range records {
		s, ok := agg.byID[rec.AccountID]
		if !ok {
			agg.Unrequested++
			continue
		}
		date, err := time.Parse(DateLayout, rec.Date)
		if err != nil {
			agg.Malformed++
			log.LogWarning("Skipping record with malformed date %q (account %s, service %s)", rec.Date, rec.AccountID, rec.ServiceID)
			continue
		}
		s.add(date, rec.ServiceID, rec.Cost)
	}

	return agg
}
