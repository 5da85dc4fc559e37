package tags

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testHandles = map[string]string{
	"Настя":    "@a_hunko",
	"Соня":     "@javelis",
	"if_found": "@if_found",
}

func TestResolve(t *testing.T) {
	r := NewResolver(testHandles, "")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: "   ", want: ""},
		{name: "known name", in: "Настя", want: "@a_hunko"},
		{name: "known name padded", in: "  Соня\t", want: "@javelis"},
		{name: "already a handle", in: "@guest_editor", want: "@guest_editor"},
		{name: "handle padded", in: " @guest ", want: "@guest"},
		{name: "unknown name", in: "Петро", want: ""},
		{name: "case sensitive", in: "настя", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, r.Resolve(tt.in)); diff != "" {
				t.Errorf("Resolve(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	r := NewResolver(testHandles, "@")
	for _, name := range []string{"Настя", "Соня", "@someone"} {
		once := r.Resolve(name)
		if diff := cmp.Diff(once, r.Resolve(once)); diff != "" {
			t.Errorf("Resolve(Resolve(%q)) mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestResolveAll(t *testing.T) {
	r := NewResolver(testHandles, "@")

	tests := []struct {
		name  string
		field string
		want  []string
	}{
		{name: "empty", field: "", want: nil},
		{name: "two co-authors", field: "Настя if_found", want: []string{"@a_hunko", "@if_found"}},
		{name: "unknown dropped", field: "Петро  Соня", want: []string{"@javelis"}},
		{name: "mixed with handle", field: "@x\nНастя", want: []string{"@x", "@a_hunko"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, r.ResolveAll(tt.field)); diff != "" {
				t.Errorf("ResolveAll(%q) mismatch (-want +got):\n%s", tt.field, diff)
			}
		})
	}
}

func TestResolverCopiesTable(t *testing.T) {
	m := map[string]string{"Настя": "@a_hunko"}
	r := NewResolver(m, "@")
	m["Настя"] = "@changed"
	if diff := cmp.Diff("@a_hunko", r.Resolve("Настя")); diff != "" {
		t.Errorf("resolver followed caller map (-want +got):\n%s", diff)
	}
}

func TestSet(t *testing.T) {
	s := NewSet("@a_hunko", "@javelis")
	s.Add("@javelis", "", "@publicsa", "@a_hunko", "@nonGratis")

	want := []string{"@a_hunko", "@javelis", "@publicsa", "@nonGratis"}
	if diff := cmp.Diff(want, s.Values()); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("@a_hunko @javelis @publicsa @nonGratis", s.String()); diff != "" {
		t.Errorf("String() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(4, s.Len()); diff != "" {
		t.Errorf("Len() mismatch (-want +got):\n%s", diff)
	}
}
