// Package summary computes the derived views the dashboard renders: yearly
// publication counts, top journals, source distribution, title word
// frequencies, and headline metrics. All views are read-only over a cleaned
// table and hold no state.
package summary

import (
	"sort"
	"strings"

	"github.com/sells-group/cord-cli/internal/model"
)

// Count is a labeled tally used by the journal, source, and word views.
type Count struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// YearCount is a per-year publication tally.
type YearCount struct {
	Year  int `json:"year" yaml:"year"`
	Count int `json:"count" yaml:"count"`
}

// Overview holds the headline metrics shown above the charts.
type Overview struct {
	TotalPapers        int     `json:"total_papers" yaml:"total_papers"`
	WithAbstract       int     `json:"with_abstract" yaml:"with_abstract"`
	WithAbstractShare  float64 `json:"with_abstract_share" yaml:"with_abstract_share"`
	MinYear            int     `json:"min_year" yaml:"min_year"`
	MaxYear            int     `json:"max_year" yaml:"max_year"`
	MeanAbstractLength float64 `json:"mean_abstract_length" yaml:"mean_abstract_length"`
}

// Stopwords excluded from title word frequencies: generic research terms and
// corpus-defining tokens that would dominate every view.
var stopwords = map[string]bool{
	"using": true, "based": true, "study": true, "analysis": true,
	"covid": true, "19": true, "sars": true, "cov": true, "2": true,
	"coronavirus": true, "pandemic": true,
	"of": true, "the": true, "and": true, "in": true, "a": true,
	"for": true, "to": true, "on": true, "with": true, "from": true,
}

// PublicationsByYear tallies papers per publication year in ascending year
// order. Years below minYear are excluded when minYear > 0.
func PublicationsByYear(t model.CleanTable, minYear int) []YearCount {
	byYear := map[int]int{}
	for _, rec := range t.Records {
		if minYear > 0 && rec.PublicationYear < minYear {
			continue
		}
		byYear[rec.PublicationYear]++
	}

	counts := make([]YearCount, 0, len(byYear))
	for year, n := range byYear {
		counts = append(counts, YearCount{Year: year, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Year < counts[j].Year })
	return counts
}

// TopJournals returns the n most frequent journals, descending. Records with
// no journal are excluded. Ties break alphabetically for stable output.
func TopJournals(t model.CleanTable, n int) []Count {
	byJournal := map[string]int{}
	for _, rec := range t.Records {
		if rec.Journal == "" {
			continue
		}
		byJournal[rec.Journal]++
	}
	return topCounts(byJournal, n)
}

// SourceDistribution returns the n most frequent source types, descending.
// Every record has a source type (missing sources are "Unknown").
func SourceDistribution(t model.CleanTable, n int) []Count {
	bySource := map[string]int{}
	for _, rec := range t.Records {
		bySource[rec.SourceType]++
	}
	return topCounts(bySource, n)
}

// TitleWordFrequencies tallies the n most frequent title words, lowercased,
// with surrounding punctuation trimmed and stopwords removed.
func TitleWordFrequencies(t model.CleanTable, n int) []Count {
	byWord := map[string]int{}
	for _, rec := range t.Records {
		for _, token := range strings.Fields(strings.ToLower(rec.Title)) {
			word := strings.Trim(token, ".,;:!?()[]{}\"'")
			if word == "" || stopwords[word] {
				continue
			}
			byWord[word]++
		}
	}
	return topCounts(byWord, n)
}

// ComputeOverview computes the headline metrics. MeanAbstractLength averages
// the abstract word count over records that actually have an abstract.
func ComputeOverview(t model.CleanTable) Overview {
	o := Overview{TotalPapers: t.Rows()}

	var abstractWords int
	for _, rec := range t.Records {
		if rec.HasAbstract {
			o.WithAbstract++
			abstractWords += rec.AbstractWordCount
		}
		if o.MinYear == 0 || rec.PublicationYear < o.MinYear {
			o.MinYear = rec.PublicationYear
		}
		if rec.PublicationYear > o.MaxYear {
			o.MaxYear = rec.PublicationYear
		}
	}
	if o.TotalPapers > 0 {
		o.WithAbstractShare = float64(o.WithAbstract) / float64(o.TotalPapers)
	}
	if o.WithAbstract > 0 {
		o.MeanAbstractLength = float64(abstractWords) / float64(o.WithAbstract)
	}
	return o
}

func topCounts(m map[string]int, n int) []Count {
	counts := make([]Count, 0, len(m))
	for label, c := range m {
		counts = append(counts, Count{Label: label, Count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Label < counts[j].Label
	})
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
