package model

import "time"

type Message struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

type MessageList struct {
	Messages []Message `json:"messages"`
}

type Quote struct {
	ID        string    `json:"id"`
	SaidBy    string    `json:"said_by"`
	Body      string    `json:"body"`
	AddedByID string    `json:"added_by_id"`
	CreatedAt time.Time `json:"created_at"`
}

type QuoteList struct {
	Quotes []Quote `json:"quotes"`
}

type Commendation struct {
	ID         string    `json:"id"`
	FromUserID string    `json:"from_user_id"`
	ToUserID   string    `json:"to_user_id"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

type CommendationList struct {
	Commendations []Commendation `json:"commendations"`
}

type MediaItem struct {
	ID           string    `json:"id"`
	FileName     string    `json:"file_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	UploadedByID string    `json:"uploaded_by_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type MediaList struct {
	Items []MediaItem `json:"items"`
}
