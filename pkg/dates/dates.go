// Package dates holds the two date layouts used at system boundaries: a
// human-facing display form and the form written into storage payloads.
// Both are minute-lossless in either direction.
package dates

import (
	"encoding/json"
	"time"
)

const (
	// DisplayLayout is the human-facing form, e.g. "25/12/2023 14:30".
	DisplayLayout = "02/01/2006 15:04"
	// StorageLayout is the persistence-facing form, e.g. "2023-12-25 14:30:00".
	StorageLayout = "2006-01-02 15:04:05"
)

// FormatDisplay renders an instant for users. A nil instant renders as "Not set".
func FormatDisplay(at *time.Time) string {
	if at == nil {
		return "Not set"
	}
	return at.Format(DisplayLayout)
}

// ParseDisplay parses a display-form string in the local zone. Empty input
// yields a nil instant.
func ParseDisplay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	at, err := time.ParseInLocation(DisplayLayout, s, time.Local)
	if err != nil {
		return nil, err
	}
	return &at, nil
}

// FormatStorage renders an instant for persistence payloads.
func FormatStorage(at time.Time) string {
	return at.Format(StorageLayout)
}

// ParseStorage parses a storage-form string in the local zone.
func ParseStorage(s string) (time.Time, error) {
	return time.ParseInLocation(StorageLayout, s, time.Local)
}

// Stamp is a time.Time that marshals to the storage layout.
type Stamp time.Time

func (s Stamp) Time() time.Time { return time.Time(s) }

func (s Stamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatStorage(time.Time(s)))
}

func (s *Stamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	at, err := ParseStorage(raw)
	if err != nil {
		return err
	}
	*s = Stamp(at)
	return nil
}
