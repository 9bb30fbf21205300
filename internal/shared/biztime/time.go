// Package biztime centralizes business timezone handling. Storage and
// transport are always UTC; the business timezone only decides date
// boundaries (end of day, daily request numbering, due-date parsing).
// Implicit time.Local is prohibited.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone applies when no timezone is configured.
const DefaultTimezone = "UTC"

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init loads the business timezone. Call once at startup; empty tz falls
// back to DefaultTimezone.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// Location returns the business timezone, auto-initializing with the
// default when Init was never called (tests).
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// EndOfDayUTC returns the last nanosecond of t's business-timezone day, in UTC.
func EndOfDayUTC(t time.Time) time.Time {
	bt := t.In(Location())
	return time.Date(bt.Year(), bt.Month(), bt.Day(), 23, 59, 59, 999999999, Location()).UTC()
}

// DateStamp formats t as YYYYMMDD in the business timezone. Daily request
// numbers key on this.
func DateStamp(t time.Time) string {
	return t.In(Location()).Format("20060102")
}

// ParseDateInBizTimezone parses YYYY-MM-DD as business-timezone midnight
// and returns the UTC equivalent.
func ParseDateInBizTimezone(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", dateStr, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", dateStr, err)
	}
	return t.UTC(), nil
}
