package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StoredResume is a validated resume document as persisted: the document
// itself plus identity and bookkeeping columns.
type StoredResume struct {
	ID        uuid.UUID       `json:"id"`
	Owner     string          `json:"owner"`
	Document  json.RawMessage `json:"document"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
