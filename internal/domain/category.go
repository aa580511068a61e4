package domain

import "time"

type Category struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Keywords     []string  `json:"keywords"`
	DisplayOrder int       `json:"display_order"`
	Count        int       `json:"count"` // recomputed by reconcile only
	Icon         string    `json:"icon,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
