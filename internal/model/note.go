package model

import (
	"encoding/json"
	"time"
)

type Note struct {
	ID        string    `json:"id"`        // uuid v4
	CreatedAt time.Time `json:"createdAt"` // RFC 3339
	Content   string    `json:"content"`
}

// UnmarshalJSON also accepts the legacy "data" key for the creation time.
func (n *Note) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID        string     `json:"id"`
		CreatedAt *time.Time `json:"createdAt"`
		Data      *time.Time `json:"data"`
		Content   string     `json:"content"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	n.ID = raw.ID
	n.Content = raw.Content
	switch {
	case raw.CreatedAt != nil:
		n.CreatedAt = *raw.CreatedAt
	case raw.Data != nil:
		n.CreatedAt = *raw.Data
	default:
		n.CreatedAt = time.Time{}
	}
	return nil
}
