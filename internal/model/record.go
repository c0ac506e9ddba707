// Package model defines the record and table types flowing through the
// cleaning pipeline.
package model

import "time"

// RawRecord is a single row as read from the metadata source, unvalidated.
// A missing cell is represented as the empty string; fields are trimmed at
// ingestion so whitespace-only cells also count as missing.
type RawRecord struct {
	Title       string `json:"title"`
	Abstract    string `json:"abstract"`
	PublishTime string `json:"publish_time"`
	Journal     string `json:"journal"`
	Source      string `json:"source"`

	// Extra holds passthrough columns the pipeline never touches,
	// keyed by original column name.
	Extra map[string]string `json:"extra,omitempty"`
}

// RawTable is the in-memory form of the raw metadata source.
type RawTable struct {
	// ExtraColumns preserves the order of passthrough columns.
	ExtraColumns []string
	Records      []RawRecord
}

// Rows returns the number of records in the table.
func (t RawTable) Rows() int { return len(t.Records) }

// CleanRecord is a validated, feature-complete row. Every CleanRecord has a
// non-empty title, a non-empty abstract (sentinel-substituted when the source
// had none), and a valid publication date with derived calendar fields.
type CleanRecord struct {
	Title              string    `json:"title"`
	Abstract           string    `json:"abstract"`
	HasAbstract        bool      `json:"has_abstract"`
	PublishTime        time.Time `json:"publish_time"`
	PublicationYear    int       `json:"publication_year"`
	PublicationMonth   int       `json:"publication_month"`
	PublicationQuarter int       `json:"publication_quarter"`
	AbstractWordCount  int       `json:"abstract_word_count"`
	TitleWordCount     int       `json:"title_word_count"`
	Journal            string    `json:"journal"`
	Source             string    `json:"source"`
	SourceType         string    `json:"source_type"`

	Extra map[string]string `json:"extra,omitempty"`
}

// CleanTable is the pipeline output consumed by the export writer, the
// summary views, and the dashboard API.
type CleanTable struct {
	ExtraColumns []string
	Records      []CleanRecord
}

// Rows returns the number of records in the table.
func (t CleanTable) Rows() int { return len(t.Records) }
