// Package validate checks the numeric answers of the setup stages.
package validate

import (
	"strconv"
	"strings"

	"github.com/teamdraft/teamdraft/internal/errors"
)

// DefaultMaxTotal caps the roster size when no limit is configured; the
// tool targets rooms, not stadiums.
const DefaultMaxTotal = 200

// ParseNumber parses a positive integer answer.
func ParseNumber(input string) (int, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, errors.NewValidationError("a number is required").WithField("input")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.NewValidationError("not a number").
			WithField("input").WithValue(s).WithCause(err)
	}
	if n < 1 {
		return 0, errors.NewValidationError("must be at least 1").
			WithField("input").WithValue(n)
	}
	return n, nil
}

// Total validates a roster size: between 2 and max inclusive. One person
// cannot be split into teams. A max below 2 falls back to DefaultMaxTotal.
func Total(n, max int) error {
	if max < 2 {
		max = DefaultMaxTotal
	}
	if n < 2 {
		return errors.NewValidationError("a roster needs at least 2 people").
			WithField("total").WithValue(n)
	}
	if n > max {
		return errors.NewValidationError("roster too large").
			WithField("total").WithValue(n)
	}
	return nil
}

// TeamCount validates a team count against a roster size: at least 2 teams,
// and never more teams than members.
func TeamCount(n, total int) error {
	if n < 2 {
		return errors.NewValidationError("at least 2 teams are needed").
			WithField("teams").WithValue(n)
	}
	if n > total {
		return errors.NewValidationError("more teams than members").
			WithField("teams").WithValue(n)
	}
	return nil
}
