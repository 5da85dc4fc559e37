package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"content_plan_bot/internal/model"
)

var ignoreRunTS = cmpopts.IgnoreFields(model.Run{}, "StartedAt", "FinishedAt")

func newTestDB(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndListRuns(t *testing.T) {
	ctx := context.Background()
	s := newTestDB(t)

	started := time.Date(2026, 10, 19, 6, 0, 0, 0, time.UTC)
	runs := []model.Run{
		{Trigger: model.TriggerSchedule, Day: "18.10.2026", Outcome: model.OutcomeEmpty, StartedAt: started, FinishedAt: started},
		{Trigger: model.TriggerSchedule, Day: "19.10.2026", Outcome: model.OutcomeSent, Posts: 5, Chunks: 1, Urgent: true, StartedAt: started, FinishedAt: started.Add(2 * time.Second)},
		{Trigger: model.TriggerManual, Day: "19.10.2026", Outcome: model.OutcomeFailed, Error: "fetch table: unexpected status 404", StartedAt: started, FinishedAt: started},
	}
	for i := range runs {
		if err := s.RecordRun(ctx, &runs[i]); err != nil {
			t.Fatalf("record run %d: %v", i, err)
		}
		if runs[i].ID == 0 {
			t.Fatalf("run %d: expected non-zero ID", i)
		}
	}

	got, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	want := []model.Run{runs[2], runs[1]}
	if diff := cmp.Diff(want, got, ignoreRunTS); diff != "" {
		t.Errorf("ListRuns mismatch (-want +got):\n%s", diff)
	}
	if !got[1].FinishedAt.Equal(started.Add(2 * time.Second)) {
		t.Errorf("FinishedAt round trip: got %v", got[1].FinishedAt)
	}
}

func TestListRunsEmpty(t *testing.T) {
	s := newTestDB(t)
	got, err := s.ListRuns(context.Background(), 5)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no runs, got %d", len(got))
	}
}

func TestHasRun(t *testing.T) {
	ctx := context.Background()
	s := newTestDB(t)

	now := time.Now().UTC()
	if err := s.RecordRun(ctx, &model.Run{
		Trigger: model.TriggerManual, Day: "19.10.2026", Outcome: model.OutcomeSent,
		StartedAt: now, FinishedAt: now,
	}); err != nil {
		t.Fatalf("record run: %v", err)
	}
	if err := s.RecordRun(ctx, &model.Run{
		Trigger: model.TriggerSchedule, Day: "18.10.2026", Outcome: model.OutcomeFailed,
		StartedAt: now, FinishedAt: now,
	}); err != nil {
		t.Fatalf("record run: %v", err)
	}

	tests := []struct {
		name    string
		day     string
		trigger model.Trigger
		want    bool
	}{
		{name: "manual run does not count as scheduled", day: "19.10.2026", trigger: model.TriggerSchedule, want: false},
		{name: "manual run found", day: "19.10.2026", trigger: model.TriggerManual, want: true},
		{name: "failed scheduled run counts", day: "18.10.2026", trigger: model.TriggerSchedule, want: true},
		{name: "other day", day: "17.10.2026", trigger: model.TriggerSchedule, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.HasRun(ctx, tt.day, tt.trigger)
			if err != nil {
				t.Fatalf("has run: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("HasRun mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListRunsCorruptTimestamp(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		started  string
		finished string
		wantErr  string
	}{
		{name: "bad started_at", started: "yesterday", finished: "2026-10-19T06:00:00Z", wantErr: "parse started_at"},
		{name: "bad finished_at", started: "2026-10-19T06:00:00Z", finished: "", wantErr: "parse finished_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestDB(t)
			_, err := s.db.ExecContext(ctx,
				`INSERT INTO runs (trigger, day, outcome, started_at, finished_at) VALUES (?, ?, ?, ?, ?)`,
				"schedule", "19.10.2026", "sent", tt.started, tt.finished,
			)
			if err != nil {
				t.Fatalf("insert run: %v", err)
			}

			runs, err := s.ListRuns(ctx, 5)
			if err == nil {
				t.Fatalf("expected error, got runs %+v", runs)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
