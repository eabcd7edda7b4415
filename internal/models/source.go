package models

import "time"

// SourceModel is a registered URL watched for regulatory-text changes.
type SourceModel struct {
	Base
	Name           string `json:"name"            gorm:"not null"`
	URL            string `json:"url"             gorm:"not null"`
	Jurisdiction   string `json:"jurisdiction"    gorm:"default:'global'"`
	RegulationType string `json:"regulation_type" gorm:"default:'general'"`
	Enabled        bool   `json:"enabled"         gorm:"default:true"`
	DueDays        *int   `json:"due_days"`
}

func (SourceModel) TableName() string { return "monitor_sources" }

// SourceVersionModel is one observed content version of a monitored source.
// Versions for a source are totally ordered by FetchedAt; the monitor only
// ever compares against the most recent one.
type SourceVersionModel struct {
	Base
	SourceID  string    `json:"source_id"  gorm:"index;not null"`
	FetchedAt time.Time `json:"fetched_at" gorm:"index;not null"`
	Digest    string    `json:"digest"     gorm:"not null"` // sha256 hex of raw fetched bytes
	Title     string    `json:"title,omitempty"`
	Snippet   string    `json:"snippet,omitempty" gorm:"type:text"`
}

func (SourceVersionModel) TableName() string { return "source_versions" }
