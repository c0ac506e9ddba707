package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/cord-cli/internal/model"
)

func cleanRow(title, abstract, source string) model.CleanRecord {
	return model.CleanRecord{
		Title:            title,
		Abstract:         abstract,
		Source:           source,
		PublishTime:      time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC),
		PublicationYear:  2020,
		PublicationMonth: 3,
	}
}

func TestDeriveFeatures_WordCounts(t *testing.T) {
	tests := []struct {
		name          string
		title         string
		abstract      string
		titleWords    int
		abstractWords int
	}{
		{"multiple spaces collapse", "A B  C", "one two", 3, 2},
		{"sentinel counts like any text", "T", AbstractSentinel, 1, 3},
		{"leading and trailing space", " spaced  out ", "x", 2, 1},
		{"newlines and tabs", "a\tb\nc", "x\ny", 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := model.CleanTable{Records: []model.CleanRecord{cleanRow(tt.title, tt.abstract, "")}}

			out, _ := DeriveFeatures(in)

			require.Equal(t, 1, out.Rows())
			assert.Equal(t, tt.titleWords, out.Records[0].TitleWordCount)
			assert.Equal(t, tt.abstractWords, out.Records[0].AbstractWordCount)
		})
	}
}

func TestDeriveFeatures_HasAbstractFlag(t *testing.T) {
	in := model.CleanTable{Records: []model.CleanRecord{
		cleanRow("T", "real abstract text", ""),
		cleanRow("U", AbstractSentinel, ""),
	}}

	out, _ := DeriveFeatures(in)

	assert.True(t, out.Records[0].HasAbstract)
	assert.False(t, out.Records[1].HasAbstract)
	for _, rec := range out.Records {
		assert.Equal(t, rec.Abstract != AbstractSentinel, rec.HasAbstract)
	}
}

func TestDeriveFeatures_SourceType(t *testing.T) {
	in := model.CleanTable{Records: []model.CleanRecord{
		cleanRow("T", "x", "PMC"),
		cleanRow("U", "x", ""),
	}}

	out, _ := DeriveFeatures(in)

	assert.Equal(t, "PMC", out.Records[0].SourceType)
	assert.Equal(t, "Unknown", out.Records[1].SourceType)
}

func TestDeriveFeatures_NeverFilters(t *testing.T) {
	in := model.CleanTable{Records: []model.CleanRecord{
		cleanRow("A", "x", ""),
		cleanRow("B", "y", ""),
		cleanRow("C", "z", ""),
	}}

	out, entry := DeriveFeatures(in)

	assert.Equal(t, in.Rows(), out.Rows())
	assert.Zero(t, entry.RowsRemoved)
	assert.Equal(t, "A", out.Records[0].Title)
	assert.Equal(t, "C", out.Records[2].Title)
}
