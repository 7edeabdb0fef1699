// Package recurrence expands RFC 5545 recurrence rules into concrete instants.
package recurrence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

var (
	// ErrEmptyRule is the cause of an InvalidRuleError for a blank rule.
	ErrEmptyRule = errors.New("recurrence rule is empty")
	// ErrMissingStart is the cause of an InvalidRuleError for a rule that has
	// no DTSTART line and was parsed without an anchor.
	ErrMissingStart = errors.New("recurrence rule has no DTSTART and nothing to anchor it to")
	// ErrIterationLimit is returned when a window would scan or yield more
	// instants than the configured Limits allow.
	ErrIterationLimit = errors.New("recurrence: iteration limit exceeded")
)

// InvalidRuleError reports a rule or time zone that cannot be parsed.
type InvalidRuleError struct {
	Rule     string
	Timezone string
	Cause    error
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid recurrence rule %q (timezone %q): %v", e.Rule, e.Timezone, e.Cause)
}

func (e *InvalidRuleError) Unwrap() error {
	return e.Cause
}

// Rule is a parsed recurrence rule bound to a time zone.
type Rule struct {
	text     string
	location *time.Location
	rrule    *rrule.RRule
}

// Parse parses ruleText in the given IANA time zone. The rule must carry a
// DTSTART line ("DTSTART:20240101T090000Z\nRRULE:FREQ=DAILY").
func Parse(ruleText, timezone string) (*Rule, error) {
	return ParseAt(ruleText, timezone, time.Time{})
}

// ParseAt is Parse for rules that may be a bare RRULE. A rule without DTSTART
// starts at anchor, truncated to the minute; with a zero anchor it is invalid.
func ParseAt(ruleText, timezone string, anchor time.Time) (*Rule, error) {
	invalid := func(cause error) error {
		return &InvalidRuleError{Rule: ruleText, Timezone: timezone, Cause: cause}
	}

	text := strings.TrimSpace(ruleText)
	if text == "" {
		return nil, invalid(ErrEmptyRule)
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, invalid(err)
	}

	opt, err := rrule.StrToROptionInLocation(text, loc)
	if err != nil {
		return nil, invalid(err)
	}
	switch {
	case !opt.Dtstart.IsZero():
		opt.Dtstart = opt.Dtstart.In(loc)
	case !anchor.IsZero():
		opt.Dtstart = anchor.In(loc).Truncate(time.Minute)
	default:
		return nil, invalid(ErrMissingStart)
	}

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, invalid(err)
	}

	return &Rule{text: text, location: loc, rrule: r}, nil
}

// String returns the rule text as parsed.
func (r *Rule) String() string {
	return r.text
}

// Location returns the zone instants are rendered in.
func (r *Rule) Location() *time.Location {
	return r.location
}

// Iterator returns a fresh iterator positioned before the first instant.
func (r *Rule) Iterator() *Iterator {
	return &Iterator{next: r.rrule.Iterator(), location: r.location}
}

// Iterator yields a rule's instants in strictly ascending order. The sequence
// may be infinite; stop calling Next to abandon it.
type Iterator struct {
	next     func() (time.Time, bool)
	location *time.Location
	done     bool
}

// Next returns the next instant, or false once the sequence has ended.
func (it *Iterator) Next() (time.Time, bool) {
	if it.done {
		return time.Time{}, false
	}
	t, ok := it.next()
	if !ok {
		it.done = true
		return time.Time{}, false
	}
	return t.In(it.location), true
}

// Limits bounds the work done by Between.
type Limits struct {
	// MaxScanned caps instants visited, including those before the window.
	MaxScanned int
	// MaxInstants caps instants returned.
	MaxInstants int
}

// DefaultLimits is used for any zero field of a Limits value.
var DefaultLimits = Limits{MaxScanned: 500000, MaxInstants: 5000}

func (l Limits) withDefaults() Limits {
	if l.MaxScanned <= 0 {
		l.MaxScanned = DefaultLimits.MaxScanned
	}
	if l.MaxInstants <= 0 {
		l.MaxInstants = DefaultLimits.MaxInstants
	}
	return l
}

// Between returns the instants in [start, end). Instants before start are
// skipped; iteration stops at the first instant at or after end.
func (r *Rule) Between(start, end time.Time, limits Limits) ([]time.Time, error) {
	if !end.After(start) {
		return nil, nil
	}
	limits = limits.withDefaults()

	var out []time.Time
	it := r.Iterator()
	for scanned := 0; ; scanned++ {
		if scanned >= limits.MaxScanned {
			return nil, fmt.Errorf("%w: scanned %d instants of %q", ErrIterationLimit, scanned, r.text)
		}
		t, ok := it.Next()
		if !ok || !t.Before(end) {
			return out, nil
		}
		if t.Before(start) {
			continue
		}
		if len(out) >= limits.MaxInstants {
			return nil, fmt.Errorf("%w: more than %d instants of %q", ErrIterationLimit, limits.MaxInstants, r.text)
		}
		out = append(out, t)
	}
}
