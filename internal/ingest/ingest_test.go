package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/cord-cli/internal/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func defaultIngest() config.IngestConfig {
	return config.IngestConfig{Delimiter: ",", LazyQuotes: true}
}

func TestLoadCSV(t *testing.T) {
	csv := `title,abstract,publish_time,journal,source_x,doi
Paper One,An abstract,2020-03-15,Lancet,PMC,10.1/one
Paper Two,,2021-01-02,,WHO,10.1/two
`
	path := writeFile(t, "metadata.csv", csv)

	table, err := Load(path, defaultIngest())
	require.NoError(t, err)

	require.Equal(t, 2, table.Rows())
	assert.Equal(t, []string{"doi"}, table.ExtraColumns)

	first := table.Records[0]
	assert.Equal(t, "Paper One", first.Title)
	assert.Equal(t, "An abstract", first.Abstract)
	assert.Equal(t, "2020-03-15", first.PublishTime)
	assert.Equal(t, "Lancet", first.Journal)
	assert.Equal(t, "PMC", first.Source)
	assert.Equal(t, "10.1/one", first.Extra["doi"])

	second := table.Records[1]
	assert.Empty(t, second.Abstract)
	assert.Empty(t, second.Journal)
	assert.Equal(t, "WHO", second.Source)
}

func TestLoadCSV_TrimsWhitespace(t *testing.T) {
	csv := "title,abstract,publish_time\n  Padded  , x ,  2020-01-01\n"
	path := writeFile(t, "metadata.csv", csv)

	table, err := Load(path, defaultIngest())
	require.NoError(t, err)

	assert.Equal(t, "Padded", table.Records[0].Title)
	assert.Equal(t, "2020-01-01", table.Records[0].PublishTime)
}

func TestLoadCSV_WhitespaceOnlyCellIsMissing(t *testing.T) {
	csv := "title,abstract,publish_time\nT,   ,2020-01-01\n"
	path := writeFile(t, "metadata.csv", csv)

	table, err := Load(path, defaultIngest())
	require.NoError(t, err)

	assert.Empty(t, table.Records[0].Abstract)
}

func TestLoadCSV_ShortRow(t *testing.T) {
	csv := "title,abstract,publish_time,journal\nOnly Title\n"
	path := writeFile(t, "metadata.csv", csv)

	table, err := Load(path, defaultIngest())
	require.NoError(t, err)

	require.Equal(t, 1, table.Rows())
	assert.Equal(t, "Only Title", table.Records[0].Title)
	assert.Empty(t, table.Records[0].Abstract)
	assert.Empty(t, table.Records[0].Journal)
}

func TestLoadCSV_HeaderCaseInsensitive(t *testing.T) {
	csv := "Title,ABSTRACT,Publish_Time\nT,x,2020-01-01\n"
	path := writeFile(t, "metadata.csv", csv)

	table, err := Load(path, defaultIngest())
	require.NoError(t, err)

	assert.Equal(t, "T", table.Records[0].Title)
	assert.Equal(t, "x", table.Records[0].Abstract)
}

func TestLoadCSV_SourceAliasPlainSource(t *testing.T) {
	// Cleaned output uses "source" rather than the raw "source_x".
	csv := "title,abstract,publish_time,source\nT,x,2020-01-01,PMC\n"
	path := writeFile(t, "metadata.csv", csv)

	table, err := Load(path, defaultIngest())
	require.NoError(t, err)

	assert.Equal(t, "PMC", table.Records[0].Source)
	assert.Empty(t, table.ExtraColumns)
}

func TestLoadTSV(t *testing.T) {
	tsv := "title\tabstract\tpublish_time\nT\tx\t2020-01-01\n"
	path := writeFile(t, "metadata.tsv", tsv)

	table, err := Load(path, defaultIngest())
	require.NoError(t, err)

	assert.Equal(t, "T", table.Records[0].Title)
}

func TestLoad_MissingRequiredColumns(t *testing.T) {
	csv := "title,journal\nT,Lancet\n"
	path := writeFile(t, "metadata.csv", csv)

	_, err := Load(path, defaultIngest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "abstract")
	assert.Contains(t, err.Error(), "publish_time")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), defaultIngest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", "")

	_, err := Load(path, defaultIngest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestLoadCSV_CustomDelimiter(t *testing.T) {
	csv := "title;abstract;publish_time\nT;x;2020-01-01\n"
	path := writeFile(t, "metadata.csv", csv)

	table, err := Load(path, config.IngestConfig{Delimiter: ";"})
	require.NoError(t, err)

	assert.Equal(t, "T", table.Records[0].Title)
}
