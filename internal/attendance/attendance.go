package attendance

import (
	"errors"
	"fmt"
)

// Present is the presence code of an ordinary working day.
const Present = "Я"

// ErrNotFound is returned when a person has no attendance record.
var ErrNotFound = errors.New("attendance record not found")

// NotFoundError names the person whose record is missing.
type NotFoundError struct {
	Person string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no attendance record for %q", e.Person)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// Day is one calendar day of an attendance record.
type Day struct {
	Index    int    // 1-based day of month
	Hours    int    // whole hours worked
	Presence string // status code, e.g. "Я", "ОТ", "Б"
}

// Record is one employee's attendance for a reporting period.
type Record struct {
	FullName  string
	Number    string
	Specialty string
	Days      []Day
}

// TotalHours returns the sum of hours worked over the period.
func (r Record) TotalHours() int {
	total := 0
	for _, d := range r.Days {
		total += d.Hours
	}
	return total
}

// Validate checks that days are numbered 1..N without gaps and hours are
// non-negative.
func (r Record) Validate() error {
	if r.FullName == "" {
		return fmt.Errorf("attendance record without a name")
	}
	for i, d := range r.Days {
		if d.Index != i+1 {
			return fmt.Errorf("%s: day %d out of sequence (expected %d)", r.FullName, d.Index, i+1)
		}
		if d.Hours < 0 {
			return fmt.Errorf("%s: negative hours on day %d", r.FullName, d.Index)
		}
	}
	return nil
}

// Set holds records keyed by full name in import order.
type Set struct {
	order  []string
	byName map[string]Record
}

// NewSet builds a Set from records. Duplicate names are rejected.
func NewSet(records ...Record) (*Set, error) {
	s := &Set{byName: make(map[string]Record, len(records))}
	for _, r := range records {
		if err := s.Add(r); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add validates and appends a record.
func (s *Set) Add(r Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if s.byName == nil {
		s.byName = make(map[string]Record)
	}
	if _, ok := s.byName[r.FullName]; ok {
		return fmt.Errorf("duplicate attendance record for %q", r.FullName)
	}
	s.order = append(s.order, r.FullName)
	s.byName[r.FullName] = r
	return nil
}

// Lookup returns the record for an exact full name.
func (s *Set) Lookup(name string) (Record, bool) {
	r, ok := s.byName[name]
	return r, ok
}

// Require is Lookup that reports a missing record as *NotFoundError.
func (s *Set) Require(name string) (Record, error) {
	r, ok := s.Lookup(name)
	if !ok {
		return Record{}, &NotFoundError{Person: name}
	}
	return r, nil
}

// Names returns full names in import order.
func (s *Set) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of records.
func (s *Set) Len() int {
	return len(s.order)
}
