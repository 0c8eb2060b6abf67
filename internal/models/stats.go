package models

import "github.com/google/uuid"

type DeckWithStats struct {
	Deck
	CardCount    int `json:"card_count"`
	Mastery      int `json:"mastery"`
	DueCardCount int `json:"due_card_count"`
}

type DeckProgress struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Progress      int       `json:"progress"`
	NewCount      int       `json:"new_count"`
	LearningCount int       `json:"learning_count"`
	MasteredCount int       `json:"mastered_count"`
	TotalCount    int       `json:"total_count"`
}
