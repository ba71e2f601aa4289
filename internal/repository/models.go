// Package repository provides database abstraction for panacus-worker's
// job queue and analysis-result cache.
package repository

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/panacus-go/pkg/model"
)

// JobRecord represents the analysis_jobs table: the work queue
// internal/scheduler/source's database source polls.
type JobRecord struct {
	ID          string          `gorm:"column:id;type:varchar(64);primaryKey"`
	GFAPath     string          `gorm:"column:gfa_path;type:varchar(1024)"`
	Mode        string          `gorm:"column:mode;type:varchar(32)"`
	Count       string          `gorm:"column:count;type:varchar(16)"`
	Coverage    string          `gorm:"column:coverage;type:varchar(256)"`
	Quorum      string          `gorm:"column:quorum;type:varchar(256)"`
	GroupBy     string          `gorm:"column:group_by;type:varchar(32)"`
	GroupFile   string          `gorm:"column:group_file;type:varchar(1024)"`
	Subset      string          `gorm:"column:subset;type:varchar(1024)"`
	Exclude     string          `gorm:"column:exclude;type:varchar(1024)"`
	OrderFile   string          `gorm:"column:order_file;type:varchar(1024)"`
	Priority    int             `gorm:"column:priority"`
	Status      model.JobStatus `gorm:"column:status"`
	StatusInfo  string          `gorm:"column:status_info;type:text"`
	SubmittedAt time.Time       `gorm:"column:submitted_at;autoCreateTime"`
	BeginTime   *time.Time      `gorm:"column:begin_time"`
	EndTime     *time.Time      `gorm:"column:end_time"`
}

// TableName returns the table name for JobRecord.
func (JobRecord) TableName() string {
	return "analysis_jobs"
}

// ToModel converts JobRecord to model.AnalysisJob.
func (j *JobRecord) ToModel() *model.AnalysisJob {
	return &model.AnalysisJob{
		ID:          j.ID,
		GFAPath:     j.GFAPath,
		Mode:        j.Mode,
		Count:       j.Count,
		Coverage:    j.Coverage,
		Quorum:      j.Quorum,
		GroupBy:     j.GroupBy,
		GroupFile:   j.GroupFile,
		Subset:      j.Subset,
		Exclude:     j.Exclude,
		Order:       j.OrderFile,
		Priority:    j.Priority,
		SubmittedAt: j.SubmittedAt,
	}
}

// JobRecordFromModel builds a JobRecord ready to insert from an AnalysisJob.
func JobRecordFromModel(job *model.AnalysisJob) *JobRecord {
	return &JobRecord{
		ID:        job.ID,
		GFAPath:   job.GFAPath,
		Mode:      job.Mode,
		Count:     job.Count,
		Coverage:  job.Coverage,
		Quorum:    job.Quorum,
		GroupBy:   job.GroupBy,
		GroupFile: job.GroupFile,
		Subset:    job.Subset,
		Exclude:   job.Exclude,
		OrderFile: job.Order,
		Priority:  job.Priority,
		Status:    model.JobStatusPending,
	}
}

// CacheEntry represents the analysis_cache table: one row per distinct
// (GFA digest, count/coverage/quorum/grouping) cache key.
type CacheEntry struct {
	Key        string    `gorm:"column:cache_key;type:varchar(128);primaryKey"`
	Digest     string    `gorm:"column:digest;type:varchar(64);index"`
	ResultJSON JSONField `gorm:"column:result;type:json"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for CacheEntry.
func (CacheEntry) TableName() string {
	return "analysis_cache"
}

// ToModel unmarshals the cached AnalysisResult.
func (c *CacheEntry) ToModel() (*model.AnalysisResult, error) {
	var result model.AnalysisResult
	if err := json.Unmarshal(c.ResultJSON, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// JSONField is a custom type for handling JSON fields in GORM.
type JSONField []byte

// Value implements driver.Valuer interface.
func (j JSONField) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return []byte(j), nil
}

// Scan implements sql.Scanner interface.
func (j *JSONField) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
		return nil
	case string:
		*j = []byte(v)
		return nil
	default:
		return errors.New("unsupported type for JSONField")
	}
}

// MarshalJSON implements json.Marshaler interface.
func (j JSONField) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (j *JSONField) UnmarshalJSON(data []byte) error {
	if data == nil || string(data) == "null" {
		*j = nil
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}
