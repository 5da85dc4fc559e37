package bot

import (
	"fmt"
	"strings"
	"time"

	"content_plan_bot/internal/model"
)

var triggerLabels = map[model.Trigger]string{
	model.TriggerSchedule: "за розкладом",
	model.TriggerManual:   "вручну",
	model.TriggerCLI:      "з консолі",
}

var outcomeLabels = map[model.Outcome]string{
	model.OutcomeSent:   "надіслано",
	model.OutcomeEmpty:  "немає актуальних постів",
	model.OutcomeFailed: "помилка",
}

// FormatRunResult summarises a finished run for the operator who started it.
func FormatRunResult(run model.Run) string {
	switch run.Outcome {
	case model.OutcomeEmpty:
		return fmt.Sprintf("Актуальних постів на %s не знайдено.", run.Day)
	case model.OutcomeFailed:
		return fmt.Sprintf("Нагадування не надіслано: %s", run.Error)
	default:
		urgency := "без звуку"
		if run.Urgent {
			urgency = "зі сповіщенням"
		}
		return fmt.Sprintf("Зведення на %s надіслано: %d пост(ів), %d повідомлення, %s.",
			run.Day, run.Posts, run.Chunks, urgency)
	}
}

// FormatRuns formats recent runs for /status.
func FormatRuns(runs []model.Run, loc *time.Location) string {
	if len(runs) == 0 {
		return "Запусків ще не було."
	}
	var b strings.Builder
	b.WriteString("Останні запуски:\n")
	for _, r := range runs {
		fmt.Fprintf(&b, "\n#%d %s (%s) — %s",
			r.ID, r.StartedAt.In(loc).Format("02.01.2006 15:04"), label(triggerLabels, r.Trigger), label(outcomeLabels, r.Outcome))
		if r.Outcome == model.OutcomeSent {
			fmt.Fprintf(&b, ", постів: %d, повідомлень: %d", r.Posts, r.Chunks)
		}
		if r.Error != "" {
			fmt.Fprintf(&b, "\n   %s", r.Error)
		}
	}
	return b.String()
}

func label[K ~string](labels map[K]string, k K) string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}
