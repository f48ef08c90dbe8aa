package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a []string persisted as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src any) error {
	return scanJSON(src, l)
}

// Score is the per-player point pair of a game or challenge.
type Score struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

func (s Score) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Score) Scan(src any) error {
	return scanJSON(src, s)
}

// WeeklySlots maps a weekday name to the time slots a coach offers.
type WeeklySlots map[string][]string

func (w WeeklySlots) Value() (driver.Value, error) {
	if w == nil {
		w = WeeklySlots{}
	}
	return json.Marshal(w)
}

func (w *WeeklySlots) Scan(src any) error {
	return scanJSON(src, w)
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("cannot scan %T into JSON column", src)
	}
}
