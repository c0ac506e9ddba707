package summary

import (
	"sort"

	"github.com/sells-group/cord-cli/internal/model"
)

// ColumnProfile reports missing values for one raw column.
type ColumnProfile struct {
	Column         string  `json:"column" yaml:"column"`
	MissingCount   int     `json:"missing_count" yaml:"missing_count"`
	MissingPercent float64 `json:"missing_percent" yaml:"missing_percent"`
}

// MissingProfile analyzes missing values in a raw table before cleaning,
// descending by missing share. Columns with no missing values are omitted.
func MissingProfile(t model.RawTable) []ColumnProfile {
	total := t.Rows()
	if total == 0 {
		return nil
	}

	counts := map[string]int{}
	for _, rec := range t.Records {
		if rec.Title == "" {
			counts["title"]++
		}
		if rec.Abstract == "" {
			counts["abstract"]++
		}
		if rec.PublishTime == "" {
			counts["publish_time"]++
		}
		if rec.Journal == "" {
			counts["journal"]++
		}
		if rec.Source == "" {
			counts["source"]++
		}
		for col, v := range rec.Extra {
			if v == "" {
				counts[col]++
			}
		}
	}

	profiles := make([]ColumnProfile, 0, len(counts))
	for col, n := range counts {
		if n == 0 {
			continue
		}
		profiles = append(profiles, ColumnProfile{
			Column:         col,
			MissingCount:   n,
			MissingPercent: float64(n) / float64(total) * 100,
		})
	}
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].MissingCount != profiles[j].MissingCount {
			return profiles[i].MissingCount > profiles[j].MissingCount
		}
		return profiles[i].Column < profiles[j].Column
	})
	return profiles
}
