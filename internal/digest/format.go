package digest

import (
	"fmt"
	"html"
	"strings"

	"content_plan_bot/internal/model"
)

// ExcerptLen is how many characters of a post body are quoted.
const ExcerptLen = 500

const (
	labelPlatform    = "Платформа"
	labelPost        = "Допис"
	labelTextAuthor  = "Виконавець тексту"
	labelImageAuthor = "Виконавець картинки"
	labelStatus      = "Статус"
	labelOverdue     = "Прострочено на"
	timeMarker       = "🕒"
)

// Sentinels are shown in place of empty cells.
type Sentinels struct {
	NoPlatform string
	NoAuthor   string
	NoStatus   string
}

// FormatBlock renders one post as an HTML block for Telegram.
func FormatBlock(e model.Entry, s Sentinels) string {
	p := e.Post
	lines := make([]string, 0, 7)

	if t := strings.TrimSpace(p.Time); t != "" {
		lines = append(lines, fmt.Sprintf("%s <b>%s</b>", timeMarker, escape(t)))
	}
	lines = append(lines,
		field(labelPlatform, orDefault(p.Platform, s.NoPlatform)),
		field(labelPost, Excerpt(p.Body, ExcerptLen)),
		field(labelTextAuthor, orDefault(p.TextAuthor, s.NoAuthor)),
	)
	if author := strings.TrimSpace(p.ImageAuthor); author != "" {
		lines = append(lines, field(labelImageAuthor, author))
	}
	if e.Bucket == model.BucketOverdue {
		lines = append(lines,
			field(labelStatus, orDefault(p.Status, s.NoStatus)),
			fmt.Sprintf("<b>%s:</b> %d дн.", labelOverdue, e.DaysDiff),
		)
	}
	return strings.Join(lines, "\n")
}

// Excerpt returns the first n characters of body with surrounding whitespace trimmed.
func Excerpt(body string, n int) string {
	r := []rune(body)
	if len(r) > n {
		r = r[:n]
	}
	return strings.TrimSpace(string(r))
}

func field(label, value string) string {
	return fmt.Sprintf("<b>%s:</b> %s", label, escape(value))
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

func escape(s string) string {
	return html.EscapeString(s)
}
