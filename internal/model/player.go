package model

import "time"

type Player struct {
	ID         string    `json:"id"`
	TemplateID string    `json:"template_id"`
	Name       string    `json:"name"`
	Position   string    `json:"position"`
	Rating     int       `json:"rating"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type PlayerList struct {
	Players []Player `json:"players"`
}
