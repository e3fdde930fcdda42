// Package report turns usage records into the text summary sent by the bot.
package report

import (
	"maps"

	"github.com/samber/lo"

	"github.com/j-veylop/reportbot/internal/models"
)

func serviceOf(r models.UsageRecord) string {
	return r.Service
}

// distinctUsers counts unique, non-NULL chat ids. Rows without a chat id are
// usages but never users, so no NULL placeholder inflates the total.
func distinctUsers(records []models.UsageRecord) int {
	return len(lo.Uniq(lo.FilterMap(records, func(r models.UsageRecord, _ int) (string, bool) {
		return r.ChatID, r.HasChatID
	})))
}

// CountUsers returns the number of distinct users overall and per service.
// The total is not the sum of the partitions: a user active under several
// services is counted once.
func CountUsers(records []models.UsageRecord) (int, map[string]int) {
	perService := lo.MapValues(lo.GroupBy(records, serviceOf), func(group []models.UsageRecord, _ string) int {
		return distinctUsers(group)
	})
	return distinctUsers(records), perService
}

// CountUsages returns the number of records overall and per service.
func CountUsages(records []models.UsageRecord) (int, map[string]int) {
	return len(records), lo.CountValuesBy(records, serviceOf)
}

// Aggregate builds a Report from records. Services without records are
// absent from both mappings.
func Aggregate(records []models.UsageRecord) models.Report {
	users, usersPerService := CountUsers(records)
	usages, usagesPerService := CountUsages(records)
	return models.Report{
		TotalUsers:       users,
		UsersPerService:  usersPerService,
		TotalUsages:      usages,
		UsagesPerService: usagesPerService,
	}
}

// Fill returns a copy of perService holding an entry for every label,
// zero where the label had no records.
func Fill(perService map[string]int, labels []string) map[string]int {
	out := make(map[string]int, len(perService)+len(labels))
	maps.Copy(out, perService)
	for _, label := range labels {
		if _, ok := out[label]; !ok {
			out[label] = 0
		}
	}
	return out
}

// FillReport applies Fill to both mappings of r.
func FillReport(r models.Report, labels []string) models.Report {
	r.UsersPerService = Fill(r.UsersPerService, labels)
	r.UsagesPerService = Fill(r.UsagesPerService, labels)
	return r
}
