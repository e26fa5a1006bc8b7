package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	s := String()
	for _, want := range []string{"version: " + Version, "commit: " + Commit, "built: " + Date} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q", Template())
	}
}

func TestGet(t *testing.T) {
	if got := Get(); got.Version != Version || got.Commit != Commit || got.Date != Date {
		t.Errorf("Get() = %+v", got)
	}
}
