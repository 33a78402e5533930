// internal/models/base.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

// Timestamps is embedded by every record. The columns are stamped by the
// services, never by gorm, so a stored record reads back unchanged.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime:false"`
}

// Touch sets CreatedAt on first use and UpdatedAt every time.
func (t *Timestamps) Touch(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

// Now is the clock used for every stamped timestamp. Microsecond precision
// matches what Postgres keeps.
var Now = func() time.Time {
	return Stamp(time.Now())
}

// Stamp normalises a client supplied time to the precision Now uses.
func Stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// IDList is a JSON-encoded list of record ids.
type IDList = datatypes.JSONSlice[string]

// Contains reports whether id is in ids.
func Contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Distinct reports whether ids holds no duplicates.
func Distinct(ids []string) bool {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}

// Actor is the authenticated caller of a domain operation.
type Actor struct {
	UserID  string
	IsAdmin bool
}
