package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Weekday is an ISO-8601 weekday number: 1=Monday … 7=Sunday.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY"}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d-1]
}

// ISOWeekday converts time.Weekday (0=Sunday) to the ISO numbering.
func ISOWeekday(wd time.Weekday) Weekday {
	if wd == time.Sunday {
		return Sunday
	}
	return Weekday(wd)
}

// weekdayAliases maps locale-specific day names to canonical weekdays.
// Input reaches the planner from user-facing pickers in several
// languages; anything not listed here is dropped at the boundary and
// internal logic only ever sees Weekday values.
var weekdayAliases = map[string]Weekday{
	"monday": Monday, "mon": Monday,
	"tuesday": Tuesday, "tue": Tuesday, "tues": Tuesday,
	"wednesday": Wednesday, "wed": Wednesday,
	"thursday": Thursday, "thu": Thursday, "thurs": Thursday,
	"friday": Friday, "fri": Friday,
	"saturday": Saturday, "sat": Saturday,
	"sunday": Sunday, "sun": Sunday,

	"понедельник": Monday, "пн": Monday,
	"вторник": Tuesday, "вт": Tuesday,
	"среда": Wednesday, "ср": Wednesday,
	"четверг": Thursday, "чт": Thursday,
	"пятница": Friday, "пт": Friday,
	"суббота": Saturday, "сб": Saturday,
	"воскресенье": Sunday, "вс": Sunday,
}

// ParseWeekday resolves a locale day name to its canonical weekday.
func ParseWeekday(name string) (Weekday, bool) {
	d, ok := weekdayAliases[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// WeekdaySet is a set of canonical weekdays packed into a 7-bit mask
// (bit 0 = Monday). It is stored as a single integer column.
type WeekdaySet uint8

// ParseWeekdaySet builds a set from locale day names, dropping any
// name the translation table does not know.
func ParseWeekdaySet(names []string) WeekdaySet {
	var s WeekdaySet
	for _, name := range names {
		if d, ok := ParseWeekday(name); ok {
			s = s.With(d)
		}
	}
	return s
}

func (s WeekdaySet) With(d Weekday) WeekdaySet {
	if d < Monday || d > Sunday {
		return s
	}
	return s | 1<<(d-1)
}

func (s WeekdaySet) Has(d Weekday) bool {
	if d < Monday || d > Sunday {
		return false
	}
	return s&(1<<(d-1)) != 0
}

func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

// Days returns the members in ISO order, Monday first.
func (s WeekdaySet) Days() []Weekday {
	var days []Weekday
	for d := Monday; d <= Sunday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// Names returns the canonical uppercase English names of the members.
func (s WeekdaySet) Names() []string {
	var names []string
	for _, d := range s.Days() {
		names = append(names, d.String())
	}
	return names
}

// Value implements driver.Valuer so gorm persists the raw mask.
func (s WeekdaySet) Value() (driver.Value, error) {
	return int64(s), nil
}

// Scan implements sql.Scanner.
func (s *WeekdaySet) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = 0
	case int64:
		*s = WeekdaySet(v)
	case []byte:
		var n int64
		if _, err := fmt.Sscanf(string(v), "%d", &n); err != nil {
			return fmt.Errorf("scan weekday set %q: %w", v, err)
		}
		*s = WeekdaySet(n)
	default:
		return fmt.Errorf("scan weekday set: unsupported type %T", src)
	}
	return nil
}

// GormDataType tells the migrator which column type to create.
func (WeekdaySet) GormDataType() string {
	return "integer"
}
