package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"content_plan_bot/internal/model"
	"content_plan_bot/internal/table"
)

// Columns names the sheet columns each post field is read from.
type Columns struct {
	PublicationDate string `yaml:"publication_date"`
	Status          string `yaml:"status"`
	TextAuthor      string `yaml:"text_author"`
	ImageAuthor     string `yaml:"image_author"`
	Platform        string `yaml:"platform"`
	Body            string `yaml:"body"`
	Time            string `yaml:"time"`
}

// Post extracts the post fields of rec.
func (c Columns) Post(rec table.Record) model.Post {
	return model.Post{
		PublicationDate: rec.Get(c.PublicationDate),
		Status:          rec.Get(c.Status),
		TextAuthor:      rec.Get(c.TextAuthor),
		ImageAuthor:     rec.Get(c.ImageAuthor),
		Platform:        rec.Get(c.Platform),
		Body:            rec.Get(c.Body),
		Time:            rec.Get(c.Time),
	}
}

// Plan describes the layout of a content plan and how its people map to handles.
type Plan struct {
	Columns      Columns           `yaml:"columns"`
	Handles      map[string]string `yaml:"handles"`
	GlobalTags   []string          `yaml:"global_tags"`
	HandlePrefix string            `yaml:"handle_prefix"`
	DoneStatuses []string          `yaml:"done_statuses"`
	NoAuthor     string            `yaml:"no_author"`
	NoStatus     string            `yaml:"no_status"`
	NoPlatform   string            `yaml:"no_platform"`
}

// DefaultPlan returns the layout of the team's Ukrainian content plan.
func DefaultPlan() Plan {
	return Plan{
		Columns: Columns{
			PublicationDate: "Публікація",
			Status:          "Статус",
			TextAuthor:      "Виконавець тексту",
			ImageAuthor:     "Виконавець картинки",
			Platform:        "Платформа",
			Body:            "Допис",
			Time:            "Час",
		},
		Handles: map[string]string{
			"Настя":     "@a_hunko",
			"Соня":      "@javelis",
			"Нікіта":    "@Nikita_vdn",
			"Publicsa":  "@publicsa",
			"if_found":  "@if_found",
			"nonGratis": "@nonGratis",
		},
		GlobalTags:   []string{"@a_hunko", "@javelis"},
		HandlePrefix: "@",
		DoneStatuses: []string{"опубліковано", "заплановано", "заблоковано"},
		NoAuthor:     "Відсутній",
		NoStatus:     "Невідомо",
		NoPlatform:   "N/A",
	}
}

// LoadPlan reads a YAML plan file. Fields left out of the file keep their defaults.
func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied config path
	if err != nil {
		return Plan{}, fmt.Errorf("read plan config: %w", err)
	}
	return ParsePlan(data)
}

// ParsePlan decodes a YAML plan document over the defaults.
func ParsePlan(data []byte) (Plan, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Plan{}, fmt.Errorf("plan config is empty")
	}
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Plan{}, fmt.Errorf("decode plan config: %w", err)
	}
	p.fillDefaults(DefaultPlan())
	return p, nil
}

func (p *Plan) fillDefaults(d Plan) {
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&p.Columns.PublicationDate, d.Columns.PublicationDate)
	fill(&p.Columns.Status, d.Columns.Status)
	fill(&p.Columns.TextAuthor, d.Columns.TextAuthor)
	fill(&p.Columns.ImageAuthor, d.Columns.ImageAuthor)
	fill(&p.Columns.Platform, d.Columns.Platform)
	fill(&p.Columns.Body, d.Columns.Body)
	fill(&p.Columns.Time, d.Columns.Time)
	fill(&p.HandlePrefix, d.HandlePrefix)
	fill(&p.NoAuthor, d.NoAuthor)
	fill(&p.NoStatus, d.NoStatus)
	fill(&p.NoPlatform, d.NoPlatform)
	if p.Handles == nil {
		p.Handles = d.Handles
	}
	if p.GlobalTags == nil {
		p.GlobalTags = d.GlobalTags
	}
	if p.DoneStatuses == nil {
		p.DoneStatuses = d.DoneStatuses
	}
}
