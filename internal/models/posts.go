package models

import "time"

type PostStatus string

const (
	PostVisible PostStatus = "VISIBLE"
	PostHidden  PostStatus = "HIDDEN"
)

// Post — пользовательская публикация, подлежащая модерации.
type Post struct {
	ID        string     `json:"id"`
	AuthorID  string     `json:"authorId"`
	Author    string     `json:"authorNickname,omitempty"`
	EventID   string     `json:"eventId,omitempty"`
	Content   string     `json:"content"`
	Reports   int        `json:"reportsCount"`
	Status    PostStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

type HidePostRequest struct {
	Reason string `json:"reason,omitempty"`
}
