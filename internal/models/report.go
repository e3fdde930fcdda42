package models

import (
	"sort"

	"github.com/samber/lo"
)

// Report is the derived, never persisted summary sent in reply to /report.
type Report struct {
	UsersPerService  map[string]int
	UsagesPerService map[string]int
	TotalUsers       int
	TotalUsages      int
}

// Services returns every service label present in either aggregate, sorted.
func (r Report) Services() []string {
	labels := lo.Uniq(append(lo.Keys(r.UsersPerService), lo.Keys(r.UsagesPerService)...))
	sort.Strings(labels)
	return labels
}
