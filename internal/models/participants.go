package models

import "time"

type ParticipantStatus string

const (
	ParticipantActive  ParticipantStatus = "ACTIVE"
	ParticipantBlocked ParticipantStatus = "BLOCKED"
)

func (s ParticipantStatus) Valid() bool {
	return s == ParticipantActive || s == ParticipantBlocked
}

// Participant — пользователь платформы глазами администратора.
type Participant struct {
	ID        string            `json:"id"`
	Nickname  string            `json:"nickname"`
	Email     string            `json:"email,omitempty"`
	Credits   int64             `json:"credits"`
	Status    ParticipantStatus `json:"status"`
	JoinedAt  time.Time         `json:"joinedAt"`
	LastSeen  *time.Time        `json:"lastSeenAt,omitempty"`
	EventsNum int               `json:"eventsCount"`
}

type ParticipantStatusRequest struct {
	Status ParticipantStatus `json:"status"`
}
