package model

import (
	"encoding/json"
	"time"
)

// BundleRecord is a stored bundle definition as handed out to storefronts.
type BundleRecord struct {
	ID        int             `json:"id" db:"id"`
	Strategy  string          `json:"strategy,omitempty" db:"strategy"`
	Rules     json.RawMessage `json:"rules" db:"rules"`
	CreatedAt time.Time       `json:"createdAt,omitempty" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt,omitempty" db:"updated_at"`
}

// BundleRequest is the request payload for creating or replacing a bundle.
type BundleRequest struct {
	Strategy string          `json:"strategy"`
	Rules    json.RawMessage `json:"rules"`
}
