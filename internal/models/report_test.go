package models

import (
	"reflect"
	"testing"
)

func TestReport_Services(t *testing.T) {
	tests := []struct {
		name   string
		report Report
		want   []string
	}{
		{
			name:   "Empty",
			report: Report{},
			want:   []string{},
		},
		{
			name: "Union",
			report: Report{
				UsersPerService:  map[string]int{"doggobot": 2},
				UsagesPerService: map[string]int{"doggobot": 3, "hangeulbot": 1},
			},
			want: []string{"doggobot", "hangeulbot"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.report.Services()
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Services() = %v, want %v", got, tt.want)
			}
		})
	}
}
