package team

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidRegistrationDate = errors.New("invalid registration date")

// registrationDatePattern accepts DD 01-31 and MM 01-12 without checking
// whether the day exists in that month (31/02 passes).
var registrationDatePattern = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[01])/(0[1-9]|1[0-2])$`)

// RegistrationDate is a calendar day and month without a year.
type RegistrationDate struct {
	Day   int
	Month int
}

func ParseRegistrationDate(raw string) (RegistrationDate, error) {
	value := strings.TrimSpace(raw)
	match := registrationDatePattern.FindStringSubmatch(value)
	if match == nil {
		return RegistrationDate{}, fmt.Errorf("%w: %q, expected DD/MM", ErrInvalidRegistrationDate, raw)
	}

	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	return RegistrationDate{Day: day, Month: month}, nil
}

func (d RegistrationDate) IsZero() bool {
	return d.Day == 0 && d.Month == 0
}

func (d RegistrationDate) String() string {
	return fmt.Sprintf("%02d/%02d", d.Day, d.Month)
}

// Before reports whether d falls earlier in the calendar year than other.
func (d RegistrationDate) Before(other RegistrationDate) bool {
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// Team is a tournament entrant. Name is unique across the whole tournament.
type Team struct {
	Name             string
	RegistrationDate RegistrationDate
	Group            int
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Group <= 0 {
		return fmt.Errorf("team group must be > 0")
	}
	if _, err := ParseRegistrationDate(t.RegistrationDate.String()); err != nil {
		return err
	}

	return nil
}
