package note

import (
	"time"

	"github.com/pkg/errors"
)

// ExpiryMode is the editor's expiry choice.
type ExpiryMode int

const (
	ExpiryNever ExpiryMode = iota
	ExpiryOneDay
	ExpirySevenDays
	ExpiryCustom
)

func (m ExpiryMode) String() string {
	switch m {
	case ExpiryOneDay:
		return "1 day"
	case ExpirySevenDays:
		return "7 days"
	case ExpiryCustom:
		return "Custom"
	}
	return "Never"
}

// ErrExpiryInPast rejects a custom expiry that is not strictly in the
// future; no request is made for such a save.
var ErrExpiryInPast = errors.New("expiry is not in the future")

// localInputLayout is the wall-clock format of the custom expiry field,
// whole minutes only.
const localInputLayout = "2006-01-02T15:04"

// ToLocalInput formats an instant as local wall-clock text for the custom
// expiry field. ParseLocalInput is its inverse up to minute precision.
func ToLocalInput(t time.Time) string {
	return t.Local().Format(localInputLayout)
}

// ParseLocalInput reads the custom expiry field back into an instant in
// the local zone.
func ParseLocalInput(s string) (time.Time, error) {
	t, err := time.ParseInLocation(localInputLayout, s, time.Local)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "parse expiry input")
	}
	return t, nil
}

// DefaultCustomExpiry seeds the custom field when it is empty: one hour
// from now, truncated to the whole minute.
func DefaultCustomExpiry(now time.Time) time.Time {
	return now.Add(time.Hour).Truncate(time.Minute)
}

// ResolveExpiry turns the editor's expiry choice into the instant carried
// by the save payload. Nil means the note never expires; the relative
// modes add calendar days. ExpiryCustom with an empty field also resolves
// to nil, matching a cleared picker.
func ResolveExpiry(mode ExpiryMode, customLocal string, now time.Time) (*time.Time, error) {
	switch mode {
	case ExpiryOneDay:
		t := now.AddDate(0, 0, 1)
		return &t, nil
	case ExpirySevenDays:
		t := now.AddDate(0, 0, 7)
		return &t, nil
	case ExpiryCustom:
		if customLocal == "" {
			return nil, nil
		}
		t, err := ParseLocalInput(customLocal)
		if err != nil {
			return nil, err
		}
		if !t.After(now) {
			return nil, ErrExpiryInPast
		}
		return &t, nil
	}
	return nil, nil
}
