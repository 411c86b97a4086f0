package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()

	if s := String(); !strings.Contains(s, "version: v9.9.9") {
		t.Errorf("String() = %q, missing version", s)
	}
	if tpl := Template(); !strings.Contains(tpl, "v9.9.9") || !strings.HasPrefix(tpl, "{{.Name}}") {
		t.Errorf("Template() = %q", tpl)
	}
	if Get().GoVersion == "" {
		t.Error("GoVersion empty")
	}
}
