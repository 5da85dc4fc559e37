// Package model defines the domain types used across the application.
package model

import "time"

// Post is one content-plan row reduced to the fields the reminder cares about.
// Values are raw cell text; nothing is mutated after decoding.
type Post struct {
	PublicationDate string
	Status          string
	TextAuthor      string
	ImageAuthor     string
	Platform        string
	Body            string
	Time            string
}

// Bucket identifies the deadline group a post belongs to.
type Bucket int

// Buckets in the order they appear in a digest.
const (
	BucketNone Bucket = iota
	BucketOverdue
	BucketToday
	BucketTomorrow
	BucketInThreeDays
)

// Buckets lists the digest sections in rendering order.
var Buckets = []Bucket{BucketOverdue, BucketToday, BucketTomorrow, BucketInThreeDays}

// String returns a stable lowercase name, used for logs and metric labels.
func (b Bucket) String() string {
	switch b {
	case BucketOverdue:
		return "overdue"
	case BucketToday:
		return "today"
	case BucketTomorrow:
		return "tomorrow"
	case BucketInThreeDays:
		return "in_three_days"
	default:
		return "none"
	}
}

// Urgent reports whether posts in this bucket should trigger a notification sound.
func (b Bucket) Urgent() bool {
	return b == BucketOverdue || b == BucketToday || b == BucketTomorrow
}

// Entry is a post that landed in a bucket.
type Entry struct {
	Post     Post
	Bucket   Bucket
	DaysDiff int
	Order    int
}

// Digest is the outcome of assembling one reminder.
type Digest struct {
	Chunks  []string
	Urgent  bool
	Total   int
	Skipped int
	Counts  map[Bucket]int
}

// Trigger names what started a reminder run.
type Trigger string

// Supported triggers.
const (
	TriggerSchedule Trigger = "schedule"
	TriggerManual   Trigger = "manual"
	TriggerCLI      Trigger = "cli"
)

// Outcome summarises how a run ended.
type Outcome string

// Run outcomes.
const (
	OutcomeSent   Outcome = "sent"
	OutcomeEmpty  Outcome = "empty"
	OutcomeFailed Outcome = "failed"
)

// Run is a recorded reminder run.
type Run struct {
	ID         int64
	Trigger    Trigger
	Day        string
	Outcome    Outcome
	Posts      int
	Chunks     int
	Urgent     bool
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}
