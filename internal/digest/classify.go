package digest

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"content_plan_bot/internal/dates"
	"content_plan_bot/internal/model"
)

// overdueWindow is how many days back a missed post is still reported.
const overdueWindow = 14

// RowDateError reports a row whose publication date cannot be parsed.
// The row is skipped; the run carries on.
type RowDateError struct {
	Row   int
	Value string
}

func (e *RowDateError) Error() string {
	return fmt.Sprintf("row %d: unparsable publication date %q", e.Row, e.Value)
}

// StatusSet is a closed set of statuses compared case-insensitively.
type StatusSet map[string]struct{}

// NewStatusSet folds and trims statuses into a set.
func NewStatusSet(statuses ...string) StatusSet {
	s := make(StatusSet, len(statuses))
	for _, st := range statuses {
		if k := foldStatus(st); k != "" {
			s[k] = struct{}{}
		}
	}
	return s
}

// Contains reports whether status, folded and trimmed, is in the set.
func (s StatusSet) Contains(status string) bool {
	_, ok := s[foldStatus(status)]
	return ok
}

func foldStatus(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Classify assigns p to a bucket relative to ref. It returns the day delta
// between today and the publication date, and a *RowDateError when the date
// is unparsable. Posts already handled (done) are never overdue.
func Classify(p model.Post, ref dates.Ref, done StatusSet) (model.Bucket, int, error) {
	published, ok := dates.Parse(p.PublicationDate)
	if !ok {
		return model.BucketNone, 0, &RowDateError{Value: p.PublicationDate}
	}
	daysDiff := dates.DayDelta(ref.TodayDate, published)

	switch {
	case isOverdue(daysDiff, p.Status, done):
		return model.BucketOverdue, daysDiff, nil
	case p.PublicationDate == ref.Today:
		return model.BucketToday, daysDiff, nil
	case p.PublicationDate == ref.Tomorrow:
		return model.BucketTomorrow, daysDiff, nil
	case p.PublicationDate == ref.InThreeDays:
		return model.BucketInThreeDays, daysDiff, nil
	default:
		return model.BucketNone, daysDiff, nil
	}
}

func isOverdue(daysDiff int, status string, done StatusSet) bool {
	return daysDiff > 0 && daysDiff <= overdueWindow && !done.Contains(status)
}
