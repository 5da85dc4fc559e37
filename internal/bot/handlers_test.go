package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"content_plan_bot/internal/model"
)

func TestParseLimitArg(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		want    int
		wantErr bool
	}{
		{name: "empty uses default", args: "", want: 5},
		{name: "whitespace uses default", args: "   ", want: 5},
		{name: "explicit", args: "3", want: 3},
		{name: "extra words ignored", args: "7 please", want: 7},
		{name: "capped", args: "100", want: 20},
		{name: "zero", args: "0", wantErr: true},
		{name: "negative", args: "-2", wantErr: true},
		{name: "not a number", args: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLimitArg(tt.args, defaultStatusLimit, maxStatusLimit)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseLimitArg() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatRunResult(t *testing.T) {
	tests := []struct {
		name string
		run  model.Run
		want string
	}{
		{
			name: "sent urgent",
			run:  model.Run{Outcome: model.OutcomeSent, Day: "19.10.2026", Posts: 5, Chunks: 1, Urgent: true},
			want: "Зведення на 19.10.2026 надіслано: 5 пост(ів), 1 повідомлення, зі сповіщенням.",
		},
		{
			name: "sent silent",
			run:  model.Run{Outcome: model.OutcomeSent, Day: "19.10.2026", Posts: 1, Chunks: 2},
			want: "Зведення на 19.10.2026 надіслано: 1 пост(ів), 2 повідомлення, без звуку.",
		},
		{
			name: "empty",
			run:  model.Run{Outcome: model.OutcomeEmpty, Day: "19.10.2026"},
			want: "Актуальних постів на 19.10.2026 не знайдено.",
		},
		{
			name: "failed",
			run:  model.Run{Outcome: model.OutcomeFailed, Error: "fetch: status 404"},
			want: "Нагадування не надіслано: fetch: status 404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, FormatRunResult(tt.run)); diff != "" {
				t.Errorf("FormatRunResult() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatRuns(t *testing.T) {
	kyiv, err := time.LoadLocation("Europe/Kyiv")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	t.Run("empty", func(t *testing.T) {
		if diff := cmp.Diff("Запусків ще не було.", FormatRuns(nil, kyiv)); diff != "" {
			t.Errorf("FormatRuns() (-want +got):\n%s", diff)
		}
	})

	t.Run("mixed outcomes", func(t *testing.T) {
		runs := []model.Run{
			{
				ID: 2, Trigger: model.TriggerManual, Outcome: model.OutcomeSent, Posts: 4, Chunks: 1,
				StartedAt: time.Date(2026, 10, 19, 7, 5, 0, 0, time.UTC),
			},
			{
				ID: 1, Trigger: model.TriggerSchedule, Outcome: model.OutcomeFailed, Error: "boom",
				StartedAt: time.Date(2026, 10, 18, 6, 0, 0, 0, time.UTC),
			},
			{
				ID: 0, Trigger: model.Trigger("other"), Outcome: model.OutcomeEmpty,
				StartedAt: time.Date(2026, 10, 17, 6, 0, 0, 0, time.UTC),
			},
		}
		want := strings.Join([]string{
			"Останні запуски:",
			"",
			"#2 19.10.2026 10:05 (вручну) — надіслано, постів: 4, повідомлень: 1",
			"#1 18.10.2026 09:00 (за розкладом) — помилка",
			"   boom",
			"#0 17.10.2026 09:00 (other) — немає актуальних постів",
		}, "\n")
		if diff := cmp.Diff(want, FormatRuns(runs, kyiv)); diff != "" {
			t.Errorf("FormatRuns() (-want +got):\n%s", diff)
		}
	})
}
