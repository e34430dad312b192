package catalog

import (
	"strings"
	"testing"
)

func TestLoad_EmbeddedData(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if c.Courses.Len() == 0 || c.Curriculum.Len() == 0 || c.Resources.Len() == 0 {
		t.Fatalf("Load() returned an empty table: courses=%d modules=%d resources=%d",
			c.Courses.Len(), c.Curriculum.Len(), c.Resources.Len())
	}

	course, ok := c.Courses.Get("python-basics")
	if !ok {
		t.Fatal(`Courses.Get("python-basics") not found`)
	}
	if course.Title != "Python for Beginners" {
		t.Errorf("Title = %q, want %q", course.Title, "Python for Beginners")
	}

	if _, ok := c.Curriculum.Get("class-12-computer-science"); !ok {
		t.Error(`Curriculum.Get("class-12-computer-science") not found`)
	}
}

func TestGet_Unknown(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, ok := c.Courses.Get("no-such-course"); ok {
		t.Error("Get() found a course that is not in the catalog")
	}
	if c.HasCourse("no-such-course") {
		t.Error("HasCourse() = true for an unknown id")
	}
}

func TestFilters(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for _, course := range c.CoursesByCategory("CODING") {
		if !strings.EqualFold(course.Category, "coding") {
			t.Errorf("CoursesByCategory(CODING) returned %q in category %q", course.ID, course.Category)
		}
	}
	if got, want := len(c.CoursesByCategory("")), c.Courses.Len(); got != want {
		t.Errorf("CoursesByCategory(\"\") returned %d courses, want %d", got, want)
	}

	for _, m := range c.ModulesForClass("10") {
		if m.Class != "10" {
			t.Errorf("ModulesForClass(10) returned %q for class %q", m.Slug, m.Class)
		}
	}
	if len(c.ResourcesForSubject("mathematics")) == 0 {
		t.Error("ResourcesForSubject(mathematics) returned nothing")
	}
}

func TestNewTable_KeepsDeclarationOrder(t *testing.T) {
	tbl, err := NewTable("resource", []Resource{{ID: "c"}, {ID: "a"}, {ID: "b"}},
		func(r Resource) string { return r.ID })
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	var ids []string
	for _, r := range tbl.All() {
		ids = append(ids, r.ID)
	}
	if got := strings.Join(ids, ","); got != "c,a,b" {
		t.Errorf("All() order = %s, want c,a,b", got)
	}
}

func TestNewTable_RejectsBadKeys(t *testing.T) {
	key := func(r Course) string { return r.ID }

	if _, err := NewTable("course", []Course{{ID: "x"}, {ID: "x"}}, key); err == nil {
		t.Error("NewTable() should reject duplicate keys")
	}
	if _, err := NewTable("course", []Course{{ID: ""}}, key); err == nil {
		t.Error("NewTable() should reject empty keys")
	}
}
