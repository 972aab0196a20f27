package models

import "time"

// Kinds of independently persisted session documents.
const (
	DocumentPantry = "pantry"
	DocumentMoods  = "moods"
	DocumentPlan   = "plan"
)

// SessionDocument holds one serialized piece of session state. Each kind is a
// separate row so a failed write of one never corrupts another.
type SessionDocument struct {
	SessionKey string    `gorm:"size:64;primaryKey" json:"session_key"`
	Kind       string    `gorm:"size:16;primaryKey" json:"kind"`
	Payload    string    `gorm:"type:text;not null" json:"payload"`
	Revision   int64     `gorm:"not null;default:0" json:"revision"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the table name for the SessionDocument model
func (SessionDocument) TableName() string {
	return "session_documents"
}
