// Package digest turns content-plan rows into the deadline reminder sent to chat.
//
// Rows are classified into buckets (overdue, today, tomorrow, in three days),
// each bucket is sorted by time of day, and the rendered HTML is cut into
// chunks that fit a single Telegram message.
package digest

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf16"

	"content_plan_bot/internal/dates"
	"content_plan_bot/internal/model"
	"content_plan_bot/internal/tags"
)

// MaxMessageLen is the Telegram limit on message text, in UTF-16 code units.
const MaxMessageLen = 4096

const separator = "———————————————————"

type section struct {
	icon     string
	title    string
	deadline func(dates.Ref) string
}

var sections = map[model.Bucket]section{
	model.BucketOverdue:     {icon: "⚠️", title: "ПРОСТРОЧЕНО"},
	model.BucketToday:       {icon: "🟥", title: "СЬОГОДНІ", deadline: func(r dates.Ref) string { return r.Today }},
	model.BucketTomorrow:    {icon: "🟨", title: "ЗАВТРА", deadline: func(r dates.Ref) string { return r.Tomorrow }},
	model.BucketInThreeDays: {icon: "🟦", title: "ЧЕРЕЗ 3 ДНІ", deadline: func(r dates.Ref) string { return r.InThreeDays }},
}

// Options configure a Builder.
type Options struct {
	Resolver     *tags.Resolver
	GlobalTags   []string
	DoneStatuses []string
	Sentinels    Sentinels
	MaxLen       int
}

// Builder assembles digests. It holds no per-run state and may be reused.
type Builder struct {
	resolver   *tags.Resolver
	globalTags []string
	done       StatusSet
	sentinels  Sentinels
	maxLen     int
	log        *slog.Logger
}

// NewBuilder creates a Builder. A nil logger discards output.
func NewBuilder(opts Options, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = tags.NewResolver(nil, "")
	}
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = MaxMessageLen
	}
	return &Builder{
		resolver:   resolver,
		globalTags: opts.GlobalTags,
		done:       NewStatusSet(opts.DoneStatuses...),
		sentinels:  opts.Sentinels,
		maxLen:     maxLen,
		log:        log,
	}
}

// Build classifies posts against ref and renders the digest. When no post
// lands in a bucket the digest has no chunks.
func (b *Builder) Build(posts []model.Post, ref dates.Ref) model.Digest {
	d := model.Digest{Counts: make(map[model.Bucket]int)}
	groups := make(map[model.Bucket][]model.Entry)
	tagSet := tags.NewSet(b.globalTags...)

	for i, p := range posts {
		bucket, daysDiff, err := Classify(p, ref, b.done)
		if err != nil {
			var rde *RowDateError
			if errors.As(err, &rde) {
				rde.Row = i + 2 // header is row 1
			}
			b.log.Debug("skip row", "error", err)
			d.Skipped++
			continue
		}
		if bucket == model.BucketNone {
			continue
		}

		tagSet.Add(b.resolver.ResolveAll(p.TextAuthor)...)
		tagSet.Add(b.resolver.ResolveAll(p.ImageAuthor)...)

		groups[bucket] = append(groups[bucket], model.Entry{
			Post:     p,
			Bucket:   bucket,
			DaysDiff: daysDiff,
			Order:    i,
		})
		d.Counts[bucket]++
		d.Total++
		if bucket.Urgent() {
			d.Urgent = true
		}
	}

	if d.Total == 0 {
		return d
	}

	for _, entries := range groups {
		SortEntries(entries)
	}

	text := b.render(groups, tagSet, ref, d.Total)
	d.Chunks = Split(text, b.maxLen)
	return d
}

// SortEntries orders entries by time of day; untimed entries go last and
// ties keep their original order.
func SortEntries(entries []model.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return dates.TimeToMinutes(entries[i].Post.Time) < dates.TimeToMinutes(entries[j].Post.Time)
	})
}

func (b *Builder) render(groups map[model.Bucket][]model.Entry, tagSet *tags.Set, ref dates.Ref, total int) string {
	var sb strings.Builder
	sb.WriteString(tagSet.String())
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "<b>ЗВЕДЕННЯ КОНТЕНТ-ПЛАНУ НА %s</b>\n", escape(ref.Today))
	fmt.Fprintf(&sb, "Знайдено %d актуальних постів.\n", total)

	for _, bucket := range model.Buckets {
		entries := groups[bucket]
		if len(entries) == 0 {
			continue
		}
		sec := sections[bucket]
		sb.WriteString("\n" + separator + "\n")
		fmt.Fprintf(&sb, "%s <b>%s</b>", sec.icon, sec.title)
		if sec.deadline != nil {
			fmt.Fprintf(&sb, " (Дедлайн: %s)", escape(sec.deadline(ref)))
		}
		sb.WriteString("\n\n")

		blocks := make([]string, len(entries))
		for i, e := range entries {
			blocks[i] = strings.TrimSpace(FormatBlock(e, b.sentinels))
		}
		sb.WriteString(strings.Join(blocks, "\n\n"))
	}

	return strings.TrimSpace(sb.String())
}

// Split cuts text into pieces of at most max UTF-16 code units, the unit
// Telegram counts message length in. Boundaries fall purely on that count,
// never inside a character; joining the pieces gives back text.
func Split(text string, max int) []string {
	if text == "" {
		return nil
	}
	if max <= 0 {
		return []string{text}
	}
	var chunks []string
	start, n := 0, 0
	for i, r := range text {
		w := utf16Len(r)
		if n > 0 && n+w > max {
			chunks = append(chunks, text[start:i])
			start, n = i, 0
		}
		n += w
	}
	return append(chunks, text[start:])
}

// UTF16Len returns the length of s in UTF-16 code units.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16Len(r)
	}
	return n
}

func utf16Len(r rune) int {
	if w := utf16.RuneLen(r); w > 0 {
		return w
	}
	return 1
}
