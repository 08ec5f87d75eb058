package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segyhp/dues-engine/pkg/utils"
)

// NullDate is a nullable date that never fails to decode. Values that cannot
// be parsed become null and keep the original text in Raw so callers can
// report them.
type NullDate struct {
	Time  time.Time
	Valid bool
	Raw   string
}

// DateOf returns a valid NullDate holding t.
func DateOf(t time.Time) NullDate {
	return NullDate{Time: t, Valid: true}
}

// ParseNullDate parses s permissively. Blank input is a plain null; any other
// unparsable input is a null that reports Malformed.
func ParseNullDate(s string) NullDate {
	if t, ok := utils.ParseDate(s); ok {
		return NullDate{Time: t, Valid: true}
	}
	return NullDate{Raw: s}
}

// Malformed reports whether a non-blank value was dropped during parsing.
func (d NullDate) Malformed() bool {
	return !d.Valid && d.Raw != ""
}

func (d NullDate) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time)
}

func (d *NullDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = NullDate{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Numbers, booleans and objects are not dates either.
		*d = NullDate{Raw: string(data)}
		return nil
	}

	*d = ParseNullDate(s)
	return nil
}

// Scan implements sql.Scanner for date, timestamp and text columns.
func (d *NullDate) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = NullDate{}
	case time.Time:
		*d = DateOf(v)
	case []byte:
		*d = ParseNullDate(string(v))
	case string:
		*d = ParseNullDate(v)
	default:
		return fmt.Errorf("cannot scan %T into NullDate", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (d NullDate) Value() (driver.Value, error) {
	if !d.Valid {
		return nil, nil
	}
	return d.Time, nil
}
