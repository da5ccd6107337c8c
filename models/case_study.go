package models

import (
	"time"

	"github.com/google/uuid"
)

// Metric is a single headline result attached to a case study
type Metric struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
}

// CaseStudy represents a client case study with narrative content
type CaseStudy struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Industry    string    `json:"industry"`
	Challenge   string    `json:"challenge"`
	Solution    string    `json:"solution"`
	Results     []Metric  `json:"results"`
	Categories  []string  `json:"categories"`
	Featured    bool      `json:"featured"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
