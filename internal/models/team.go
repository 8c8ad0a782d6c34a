package models

import (
	"time"

	"github.com/google/uuid"
)

// Team доступна этому сервису только на чтение
type Team struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	Members   []uuid.UUID `json:"members" db:"members"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
}

func (t *Team) HasMember(userID uuid.UUID) bool {
	for _, m := range t.Members {
		if m == userID {
			return true
		}
	}
	return false
}
