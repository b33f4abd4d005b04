package store

import (
    "time"

    "wikiquiz/internal/extract"
    "wikiquiz/internal/quiz"
)

// Record is one generated quiz, keyed uniquely by the source URL. The JSON
// field names match the API payload; RawHTML is kept for audit/replay and
// never serialized to clients.
type Record struct {
    ID            uint                `gorm:"primarykey" json:"id"`
    URL           string              `gorm:"uniqueIndex;size:512" json:"url"`
    Title         string              `json:"title"`
    Summary       string              `gorm:"type:text" json:"summary"`
    KeyEntities   extract.KeyEntities `gorm:"serializer:json" json:"key_entities"`
    Sections      []string            `gorm:"serializer:json" json:"sections"`
    Questions     []quiz.Question     `gorm:"serializer:json" json:"quiz"`
    RelatedTopics []string            `gorm:"serializer:json" json:"related_topics"`
    RawHTML       string              `gorm:"type:text" json:"-"`
    CreatedAt     time.Time           `json:"created_at"`
}

func (Record) TableName() string {
    return "quizzes"
}

// Summary is the projection served by the list endpoint.
type Summary struct {
    ID        uint      `json:"id"`
    URL       string    `json:"url"`
    Title     string    `json:"title"`
    CreatedAt time.Time `json:"created_at"`
}
