// Package accounts turns spreadsheet-style rows into validated account groups.
package accounts

import (
	"regexp"
	"strings"

	"github.com/diillson/aws-cost-chart/internal/domain/entity"
)

// DefaultGroupName is used for rows with an empty name cell.
const DefaultGroupName = "No Name"

var (
	channelRegex = regexp.MustCompile(`^[CG][A-Z0-9]{8,}$`)
	accountRegex = regexp.MustCompile(`^\d{12}$`)
)

// IsChannelID reports whether s looks like a Slack channel id.
func IsChannelID(s string) bool {
	return channelRegex.MatchString(s)
}

// IsAccountID reports whether s is a 12-digit AWS account id.
func IsAccountID(s string) bool {
	return accountRegex.MatchString(s)
}

// ParseRows converts rows of the form
//
//	name, channel, accountID, displayName[, accountID, displayName...]
//
// into groups. Rows with fewer than four cells or an invalid channel are
// skipped, as are account pairs that are incomplete, invalid or repeated
// within the row. Groups left without accounts are dropped.
func ParseRows(rows [][]string) []entity.AccountGroup {
	var groups []entity.AccountGroup
	for _, row := range rows {
		if len(row) < 4 {
			continue
		}
		name := strings.TrimSpace(row[0])
		channel := strings.TrimSpace(row[1])
		if !IsChannelID(channel) {
			continue
		}

		var accounts []entity.Account
		seen := make(map[string]bool)
		for i := 2; i+1 < len(row); i += 2 {
			id := strings.TrimSpace(row[i])
			displayName := strings.TrimSpace(row[i+1])
			if id == "" || displayName == "" || seen[id] || !IsAccountID(id) {
				continue
			}
			seen[id] = true
			accounts = append(accounts, entity.Account{ID: id, DisplayName: displayName})
		}
		if len(accounts) == 0 {
			continue
		}

		if name == "" {
			name = DefaultGroupName
		}
		groups = append(groups, entity.AccountGroup{
			Name:          name,
			TargetChannel: channel,
			Accounts:      accounts,
		})
	}
	return groups
}
