// Package reminder runs one content-plan reminder: fetch the table, build
// the digest, deliver it and record the outcome.
package reminder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"content_plan_bot/internal/config"
	"content_plan_bot/internal/dates"
	"content_plan_bot/internal/digest"
	"content_plan_bot/internal/model"
	"content_plan_bot/internal/storage"
	"content_plan_bot/internal/table"
)

// ErrorPrefix starts the plain-text report sent when a run fails.
const ErrorPrefix = "Помилка Cron: "

// Sender delivers messages to the team chat.
type Sender interface {
	SendChunk(ctx context.Context, text string, silent bool) error
	SendPlain(ctx context.Context, text string) error
}

// Fetcher downloads the published table.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Observer receives run statistics.
type Observer interface {
	ObserveDigest(d model.Digest)
	ObserveRun(run model.Run)
	ChunkSent()
}

type nopObserver struct{}

func (nopObserver) ObserveDigest(model.Digest) {}
func (nopObserver) ObserveRun(model.Run)       {}
func (nopObserver) ChunkSent()                 {}

// DeliveryError reports the chunk that could not be sent. Chunks after it
// are not attempted.
type DeliveryError struct {
	Chunk int
	Total int
	Err   error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver chunk %d/%d: %v", e.Chunk, e.Total, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Options configure a Service. Store and Observer are optional.
type Options struct {
	SheetURL string
	Columns  config.Columns
	Fetcher  Fetcher
	Builder  *digest.Builder
	Clock    *dates.Clock
	Sender   Sender
	Store    storage.Storage
	Observer Observer
	Log      *slog.Logger
}

// Service runs reminders.
type Service struct {
	sheetURL string
	columns  config.Columns
	fetcher  Fetcher
	builder  *digest.Builder
	clock    *dates.Clock
	sender   Sender
	store    storage.Storage
	observer Observer
	log      *slog.Logger
}

// New creates a Service from opts.
func New(opts Options) *Service {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = dates.NewClock(time.UTC)
	}
	return &Service{
		sheetURL: opts.SheetURL,
		columns:  opts.Columns,
		fetcher:  opts.Fetcher,
		builder:  opts.Builder,
		clock:    clock,
		sender:   opts.Sender,
		store:    opts.Store,
		observer: observer,
		log:      log,
	}
}

// Run performs one reminder. The returned run is always filled in, also on
// failure; the error is the one reported to the chat.
func (s *Service) Run(ctx context.Context, trigger model.Trigger) (model.Run, error) {
	ref := s.clock.Ref()
	run := model.Run{
		Trigger:   trigger,
		Day:       ref.Today,
		StartedAt: s.clock.Now(),
	}

	d, err := s.deliver(ctx, ref, &run)
	run.FinishedAt = s.clock.Now()

	switch {
	case err != nil:
		run.Outcome = model.OutcomeFailed
		run.Error = err.Error()
		s.log.Error("reminder failed", "trigger", trigger, "day", run.Day, "error", err)
		if sendErr := s.sender.SendPlain(ctx, ErrorPrefix+err.Error()); sendErr != nil {
			s.log.Error("send error report", "error", sendErr)
		}
	case len(d.Chunks) == 0:
		run.Outcome = model.OutcomeEmpty
		s.log.Info("nothing to remind", "trigger", trigger, "day", run.Day, "skipped", d.Skipped)
	default:
		run.Outcome = model.OutcomeSent
		s.log.Info("reminder sent",
			"trigger", trigger,
			"day", run.Day,
			"posts", run.Posts,
			"chunks", run.Chunks,
			"urgent", run.Urgent,
			"skipped", d.Skipped,
		)
	}

	if s.store != nil {
		if recErr := s.store.RecordRun(ctx, &run); recErr != nil {
			s.log.Error("record run", "error", recErr)
		}
	}
	s.observer.ObserveRun(run)

	return run, err
}

func (s *Service) deliver(ctx context.Context, ref dates.Ref, run *model.Run) (model.Digest, error) {
	data, err := s.fetcher.Fetch(ctx, s.sheetURL)
	if err != nil {
		return model.Digest{}, err
	}

	records, err := table.Decode(bytes.NewReader(data))
	if err != nil {
		return model.Digest{}, err
	}

	posts := make([]model.Post, len(records))
	for i, rec := range records {
		posts[i] = s.columns.Post(rec)
	}

	d := s.builder.Build(posts, ref)
	s.observer.ObserveDigest(d)
	run.Posts = d.Total
	run.Urgent = d.Urgent

	silent := !d.Urgent
	for i, chunk := range d.Chunks {
		if err := s.sender.SendChunk(ctx, chunk, silent); err != nil {
			return d, &DeliveryError{Chunk: i + 1, Total: len(d.Chunks), Err: err}
		}
		run.Chunks++
		s.observer.ChunkSent()
	}
	return d, nil
}
