package model

import "time"

// Template is a named work-area partitioning the dashboard. An open template
// is visible to every authenticated staff member; a restricted one only to the
// users on its membership list.
type Template struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Open      bool      `json:"open"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TemplateList struct {
	Templates []Template `json:"templates"`
}

type TemplateMembers struct {
	TemplateID string   `json:"template_id"`
	UserIDs    []string `json:"user_ids"`
}
