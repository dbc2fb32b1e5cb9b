package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Job status values.
const (
	JobCompleted = "completed"
	JobRejected  = "rejected"
	JobFailed    = "failed"
)

// AnalysisJob is one persisted pipeline run over a paper text snapshot.
// Report, Tokens and Questions hold the serialized stage outputs; the markup
// document and the raw source live in object storage under the job id.
type AnalysisJob struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Status      string `gorm:"type:varchar(16);index" json:"status"`
	Subject     string `gorm:"type:varchar(255)" json:"subject"`
	SyllabusRef string `gorm:"type:varchar(512)" json:"syllabusRef"`

	DeclaredMarks   int `json:"declaredMarks"`
	CalculatedMarks int `json:"calculatedMarks"`
	DeclaredTime    int `json:"declaredTime"`
	EstimatedTime   int `json:"estimatedTime"`
	QuestionCount   int `json:"questionCount"`
	Score           int `json:"score"`

	InputChars int    `json:"inputChars"`
	Markup     string `gorm:"type:longtext" json:"-"`
	MarkupURL  string `gorm:"type:varchar(512)" json:"markupUrl"`
	SourceURL  string `gorm:"type:varchar(512)" json:"sourceUrl"`

	Report    json.RawMessage `gorm:"type:json" json:"report,omitempty"`
	Tokens    json.RawMessage `gorm:"type:json" json:"tokens,omitempty"`
	Questions json.RawMessage `gorm:"type:json" json:"questions,omitempty"`
}

func (j *AnalysisJob) BeforeCreate(tx *gorm.DB) (err error) {
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	return
}
