// Package catalog holds the site's static content: the course catalog, the
// school curriculum browser and the study-resource map.
//
// The data ships inside the binary as YAML (data/*.yaml) and is decoded once
// by Load. After that the tables are read-only and safe to share between
// goroutines. Records share their slices with the table, so callers must not
// modify them.
package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Course is one entry in the course catalog.
type Course struct {
	ID          string   `yaml:"id"          json:"id"`
	Title       string   `yaml:"title"       json:"title"`
	Category    string   `yaml:"category"    json:"category"`
	Level       string   `yaml:"level"       json:"level"`
	Classes     []string `yaml:"classes"     json:"classes"`
	Duration    string   `yaml:"duration"    json:"duration"`
	Price       int      `yaml:"price"       json:"price"` // in rupees, 0 = free
	Instructor  string   `yaml:"instructor"  json:"instructor"`
	Description string   `yaml:"description" json:"description"`
	Topics      []string `yaml:"topics"      json:"topics"`
}

// Module is one subject for one school class in the curriculum browser.
type Module struct {
	Slug     string    `yaml:"slug"     json:"slug"`
	Class    string    `yaml:"class"    json:"class"`
	Subject  string    `yaml:"subject"  json:"subject"`
	Title    string    `yaml:"title"    json:"title"`
	Chapters []Chapter `yaml:"chapters" json:"chapters"`
}

// Chapter is a unit inside a curriculum module.
type Chapter struct {
	Title  string   `yaml:"title"  json:"title"`
	Topics []string `yaml:"topics" json:"topics"`
}

// Resource is a downloadable or linked study resource.
type Resource struct {
	ID      string `yaml:"id"      json:"id"`
	Subject string `yaml:"subject" json:"subject"`
	Title   string `yaml:"title"   json:"title"`
	Kind    string `yaml:"kind"    json:"kind"` // notes, worksheet, video, ...
	URL     string `yaml:"url"     json:"url"`
}

// Catalog bundles the three tables.
type Catalog struct {
	Courses    *Table[Course]
	Curriculum *Table[Module]
	Resources  *Table[Resource]
}

// Load decodes the embedded data files.
func Load() (*Catalog, error) {
	var (
		courses   []Course
		modules   []Module
		resources []Resource
	)
	if err := decode("data/courses.yaml", &courses); err != nil {
		return nil, err
	}
	if err := decode("data/curriculum.yaml", &modules); err != nil {
		return nil, err
	}
	if err := decode("data/resources.yaml", &resources); err != nil {
		return nil, err
	}
	return New(courses, modules, resources)
}

// New builds a catalog from records already in memory. Keys must be
// non-empty and unique within each table.
func New(courses []Course, modules []Module, resources []Resource) (*Catalog, error) {
	c := &Catalog{}
	var err error

	if c.Courses, err = NewTable("course", courses, func(r Course) string { return r.ID }); err != nil {
		return nil, err
	}
	if c.Curriculum, err = NewTable("module", modules, func(r Module) string { return r.Slug }); err != nil {
		return nil, err
	}
	if c.Resources, err = NewTable("resource", resources, func(r Resource) string { return r.ID }); err != nil {
		return nil, err
	}
	return c, nil
}

func decode(name string, out any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("catalog: reading %s: %w", name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("catalog: decoding %s: %w", name, err)
	}
	return nil
}

// CoursesByCategory returns the courses in category (any casing), or the
// whole catalog when category is empty.
func (c *Catalog) CoursesByCategory(category string) []Course {
	return c.Courses.Filter(func(r Course) bool {
		return category == "" || strings.EqualFold(r.Category, category)
	})
}

// ModulesForClass returns the curriculum modules for a school class, or all
// modules when class is empty.
func (c *Catalog) ModulesForClass(class string) []Module {
	return c.Curriculum.Filter(func(r Module) bool {
		return class == "" || strings.EqualFold(r.Class, class)
	})
}

// ResourcesForSubject returns the resources for subject, or all of them
// when subject is empty.
func (c *Catalog) ResourcesForSubject(subject string) []Resource {
	return c.Resources.Filter(func(r Resource) bool {
		return subject == "" || strings.EqualFold(r.Subject, subject)
	})
}

// HasCourse reports whether id names a catalog course.
func (c *Catalog) HasCourse(id string) bool {
	_, ok := c.Courses.Get(id)
	return ok
}
