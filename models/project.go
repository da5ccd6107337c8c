package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a portfolio project entry
type Project struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Link        string    `json:"link"`
	Tags        []string  `json:"tags"`
	Categories  []string  `json:"categories"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
