package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/cord-cli/internal/model"
)

func TestNormalizeTemporal_DerivesCalendarFields(t *testing.T) {
	tests := []struct {
		publishTime string
		year        int
		month       int
		quarter     int
	}{
		{"2020-03-15", 2020, 3, 1},
		{"2020-04-06", 2020, 4, 2},
		{"2021-09-30", 2021, 9, 3},
		{"2019-12-31", 2019, 12, 4},
		{"2020", 2020, 1, 1},
		{"2020 Apr 17", 2020, 4, 2},
		{"2020 May", 2020, 5, 2},
		{"Jan 2, 2021", 2021, 1, 1},
		{"06/15/2020", 2020, 6, 2},
	}
	for _, tt := range tests {
		t.Run(tt.publishTime, func(t *testing.T) {
			in := model.RawTable{Records: []model.RawRecord{
				{Title: "T", Abstract: "x", PublishTime: tt.publishTime},
			}}

			out, _, err := NormalizeTemporal(in)
			require.NoError(t, err)
			require.Equal(t, 1, out.Rows())

			rec := out.Records[0]
			assert.Equal(t, tt.year, rec.PublicationYear)
			assert.Equal(t, tt.month, rec.PublicationMonth)
			assert.Equal(t, tt.quarter, rec.PublicationQuarter)
			assert.Equal(t, rec.PublicationYear, rec.PublishTime.Year())
		})
	}
}

func TestNormalizeTemporal_DropsUnparseable(t *testing.T) {
	in := model.RawTable{Records: []model.RawRecord{
		{Title: "T", Abstract: "x", PublishTime: "not-a-date"},
		{Title: "U", Abstract: "x", PublishTime: "2020-03-15"},
	}}

	out, entry, err := NormalizeTemporal(in)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Rows())
	assert.Equal(t, "U", out.Records[0].Title)
	assert.Equal(t, 1, entry.RowsRemoved)
	assert.Contains(t, entry.Description, "1 rows with unparseable dates")
}

func TestNormalizeTemporal_EmptyPublishTimeIsSystemic(t *testing.T) {
	// The missing-value stage must have removed empty publish_time rows.
	in := model.RawTable{Records: []model.RawRecord{
		{Title: "T", Abstract: "x", PublishTime: ""},
	}}

	_, _, err := NormalizeTemporal(in)

	assert.ErrorIs(t, err, ErrTemporal)
}

func TestNormalizeTemporal_QuarterMatchesCeilMonthOverThree(t *testing.T) {
	var records []model.RawRecord
	for m := 1; m <= 12; m++ {
		records = append(records, model.RawRecord{
			Title:       "T",
			Abstract:    "x",
			PublishTime: time.Date(2020, time.Month(m), 10, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
		})
	}

	out, _, err := NormalizeTemporal(model.RawTable{Records: records})
	require.NoError(t, err)
	require.Equal(t, 12, out.Rows())

	for _, rec := range out.Records {
		want := (rec.PublicationMonth + 2) / 3 // ceil(month/3)
		assert.Equal(t, want, rec.PublicationQuarter, "month %d", rec.PublicationMonth)
		assert.GreaterOrEqual(t, rec.PublicationQuarter, 1)
		assert.LessOrEqual(t, rec.PublicationQuarter, 4)
	}
}

func TestNormalizeTemporal_PreservesOrder(t *testing.T) {
	in := model.RawTable{Records: []model.RawRecord{
		{Title: "A", Abstract: "x", PublishTime: "2020-01-01"},
		{Title: "bad", Abstract: "x", PublishTime: "???"},
		{Title: "B", Abstract: "x", PublishTime: "2021-01-01"},
	}}

	out, _, err := NormalizeTemporal(in)
	require.NoError(t, err)

	require.Equal(t, 2, out.Rows())
	assert.Equal(t, "A", out.Records[0].Title)
	assert.Equal(t, "B", out.Records[1].Title)
}

func TestParseDate_Unparseable(t *testing.T) {
	for _, s := range []string{"not-a-date", "13/45/2020", "abc 2020"} {
		_, ok := parseDate(s)
		assert.False(t, ok, s)
	}
}
