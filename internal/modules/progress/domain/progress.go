package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	apperrors "microhub/internal/platform/errors"
)

// LessonSet holds 1-based lesson numbers. It serializes as a sorted array.
type LessonSet map[int]struct{}

func NewLessonSet(lessons ...int) LessonSet {
	set := LessonSet{}
	for _, n := range lessons {
		set[n] = struct{}{}
	}
	return set
}

func (s LessonSet) Has(n int) bool {
	_, ok := s[n]
	return ok
}

func (s LessonSet) Add(n int) bool {
	if s.Has(n) {
		return false
	}
	s[n] = struct{}{}
	return true
}

func (s LessonSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

func (s LessonSet) Max() int {
	highest := 0
	for n := range s {
		if n > highest {
			highest = n
		}
	}
	return highest
}

func (s LessonSet) Clone() LessonSet {
	out := make(LessonSet, len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	return out
}

func (s LessonSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *LessonSet) UnmarshalJSON(data []byte) error {
	var lessons []int
	if err := json.Unmarshal(data, &lessons); err != nil {
		return err
	}
	set := NewLessonSet()
	for _, n := range lessons {
		if n < 1 {
			return fmt.Errorf("lesson number %d out of range", n)
		}
		set[n] = struct{}{}
	}
	*s = set
	return nil
}

type CourseProgress struct {
	CompletedLessons LessonSet `json:"completedLessons"`
	UnlockedLessons  LessonSet `json:"unlockedLessons"`
	HasAccess        bool      `json:"hasAccess"`
	AccessCode       string    `json:"accessCode,omitempty"`
	QuizSubmitted    bool      `json:"quizSubmitted,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt,omitzero"`
}

// Seed is the record of a course that has never been visited.
func Seed(isFree bool) CourseProgress {
	return CourseProgress{
		CompletedLessons: NewLessonSet(),
		UnlockedLessons:  NewLessonSet(1),
		HasAccess:        isFree,
	}
}

func (p CourseProgress) Clone() CourseProgress {
	out := p
	out.CompletedLessons = p.CompletedLessons.Clone()
	out.UnlockedLessons = p.UnlockedLessons.Clone()
	return out
}

// Complete marks lesson n done and unlocks n+1. The next lesson is not
// bounded by the course length; an extra unlocked number is never rendered.
func (p *CourseProgress) Complete(n int) (bool, error) {
	if n < 1 {
		return false, fmt.Errorf("lesson %d: %w", n, apperrors.ErrInvalidInput)
	}
	if !p.UnlockedLessons.Has(n) {
		return false, fmt.Errorf("lesson %d: %w", n, apperrors.ErrLessonLocked)
	}
	changed := p.CompletedLessons.Add(n)
	if p.UnlockedLessons.Add(n + 1) {
		changed = true
	}
	return changed, nil
}

// Grant records the code that satisfied the paywall, replacing any earlier one.
func (p *CourseProgress) Grant(code string) bool {
	changed := !p.HasAccess || p.AccessCode != code
	p.HasAccess = true
	p.AccessCode = code
	return changed
}

// Normalize repairs records written by older builds: lesson 1 is always
// unlocked and every completed lesson counts as unlocked.
func (p *CourseProgress) Normalize() {
	if p.CompletedLessons == nil {
		p.CompletedLessons = NewLessonSet()
	}
	if p.UnlockedLessons == nil {
		p.UnlockedLessons = NewLessonSet()
	}
	p.UnlockedLessons.Add(1)
	for n := range p.CompletedLessons {
		p.UnlockedLessons.Add(n)
	}
}

func (p CourseProgress) Equal(other CourseProgress) bool {
	return equalSets(p.CompletedLessons, other.CompletedLessons) &&
		equalSets(p.UnlockedLessons, other.UnlockedLessons) &&
		p.HasAccess == other.HasAccess &&
		p.AccessCode == other.AccessCode &&
		p.QuizSubmitted == other.QuizSubmitted &&
		p.UpdatedAt.Equal(other.UpdatedAt)
}

func equalSets(a, b LessonSet) bool {
	if len(a) != len(b) {
		return false
	}
	for n := range a {
		if !b.Has(n) {
			return false
		}
	}
	return true
}

// Table maps course ID to its progress record and is persisted as one document.
type Table map[string]CourseProgress

func (t Table) Clone() Table {
	out := make(Table, len(t))
	for id, p := range t {
		out[id] = p.Clone()
	}
	return out
}

func (t Table) CourseIDs() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func EncodeTable(t Table) ([]byte, error) {
	payload, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal progress table: %w", err)
	}
	return payload, nil
}

// DecodeTable wraps every parse problem in ErrCorruptState.
func DecodeTable(payload []byte) (Table, error) {
	table := Table{}
	if err := json.Unmarshal(payload, &table); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCorruptState, err)
	}
	if table == nil {
		return Table{}, nil
	}
	for id, p := range table {
		if id == "" {
			return nil, fmt.Errorf("%w: empty course id", apperrors.ErrCorruptState)
		}
		p.Normalize()
		table[id] = p
	}
	return table, nil
}

// Row is the projected summary of one course record.
type Row struct {
	CourseID       string
	CompletedCount int
	UnlockedMax    int
	HasAccess      bool
	AccessCode     string
	QuizSubmitted  bool
	UpdatedAt      time.Time
}

func (p CourseProgress) Row(courseID string) Row {
	return Row{
		CourseID:       courseID,
		CompletedCount: len(p.CompletedLessons),
		UnlockedMax:    p.UnlockedLessons.Max(),
		HasAccess:      p.HasAccess,
		AccessCode:     p.AccessCode,
		QuizSubmitted:  p.QuizSubmitted,
		UpdatedAt:      p.UpdatedAt,
	}
}
