package marvel

import (
	"encoding/json"
	"strings"
	"time"
)

// DateLayout is the layout of dates returned by the Marvel API.
const DateLayout = "2006-01-02 15:04:05"

// Date is an optional date as returned by the Marvel API.
// Unlike [time.Time] it is safe to compare with == and to use as a map key.
type Date struct {
	value string
	valid bool
}

// NewDate returns a present date holding s as sent by the API.
func NewDate(s string) Date {
	return Date{value: s, valid: true}
}

// Valid reports whether the date is present.
func (d Date) Valid() bool {
	return d.valid
}

// String returns the raw value, or an empty string when absent.
func (d Date) String() string {
	return d.value
}

// Time parses the date. It returns the zero time when the date is absent.
func (d Date) Time() (time.Time, error) {
	if !d.valid {
		return time.Time{}, nil
	}

	if t, err := time.Parse(DateLayout, d.value); err == nil {
		return t, nil
	}

	return time.Parse(time.RFC3339, d.value)
}

// Compare returns -1, 0 or +1 depending on whether d sorts before, with or
// after other. An absent date sorts before every present one; present dates
// compare by their string value, which is chronological for [DateLayout].
func (d Date) Compare(other Date) int {
	switch {
	case !d.valid && !other.valid:
		return 0
	case !d.valid:
		return -1
	case !other.valid:
		return 1
	}

	return strings.Compare(d.value, other.value)
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" || string(data) == `""` {
		*d = Date{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*d = NewDate(s)
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.valid {
		return []byte("null"), nil
	}

	return json.Marshal(d.value)
}
