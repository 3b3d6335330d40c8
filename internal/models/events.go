package models

import "time"

type EventStatus string

const (
	EventPending  EventStatus = "PENDING"
	EventApproved EventStatus = "APPROVED"
	EventRejected EventStatus = "REJECTED"
)

// Event — мероприятие, ожидающее модерации или уже рассмотренное.
type Event struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description,omitempty"`
	HostID          string      `json:"hostId"`
	HostName        string      `json:"hostName,omitempty"`
	Location        string      `json:"location,omitempty"`
	StartsAt        time.Time   `json:"startsAt"`
	EndsAt          time.Time   `json:"endsAt"`
	Capacity        int         `json:"capacity"`
	Participants    int         `json:"participants"`
	Status          EventStatus `json:"status"`
	RejectionReason string      `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// RejectEventRequest — причина отклонения обязательна.
type RejectEventRequest struct {
	Reason string `json:"reason"`
}
