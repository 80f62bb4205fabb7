package model

import "time"

// BlacklistEntry is one persisted blacklist domain.
type BlacklistEntry struct {
	AddedAt time.Time
	Domain  string
	Reason  string
}
