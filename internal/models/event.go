package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Layouts used to present an event's date_time as two separate fields.
// Parsing uses the non-padded hour so both "03:04 PM" and "3:04 PM" are accepted.
const (
	DateLayout      = "2006-01-02"
	TimeLayout      = "03:04 PM"
	parseTimeLayout = "3:04 PM"
)

// Event represents a scheduled session of a game, organized by a user.
type Event struct {
	gorm.Model
	Name        string    `gorm:"size:200;not null"`
	DateTime    time.Time `gorm:"not null"`
	Location    string    `gorm:"size:200;not null"`
	OrganizerID uint      `gorm:"not null;index"`
	GameID      uint      `gorm:"not null;index"`

	Organizer User   `gorm:"foreignKey:OrganizerID"`
	Game      Game   `gorm:"foreignKey:GameID"`
	Attendees []User `gorm:"many2many:event_attendees;"`
}

// OwnerID returns the organizer, the only user allowed to modify the event.
func (e Event) OwnerID() uint {
	return e.OrganizerID
}

// Date returns the calendar date of the event in UTC.
func (e Event) Date() string {
	return e.DateTime.UTC().Format(DateLayout)
}

// Time returns the 12-hour clock time of the event in UTC.
func (e Event) Time() string {
	return e.DateTime.UTC().Format(TimeLayout)
}

// ValidDate reports whether s is a date in the DateLayout format.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, strings.TrimSpace(s))
	return err == nil
}

// ValidTime reports whether s is a 12-hour clock time such as "07:30 PM".
func ValidTime(s string) bool {
	_, err := time.Parse(parseTimeLayout, strings.ToUpper(strings.TrimSpace(s)))
	return err == nil
}

// ParseDateTime combines a date and a clock time, as produced by Date and Time,
// back into a single UTC instant.
func ParseDateTime(date, clock string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	c, err := time.ParseInLocation(parseTimeLayout, strings.ToUpper(strings.TrimSpace(clock)), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected hh:mm AM/PM", clock)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC), nil
}
