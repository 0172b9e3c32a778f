package buildinfo

import (
	"strings"
	"testing"
)

func TestGetMatchesVariables(t *testing.T) {
	old := Version
	defer func() { Version = old }()
	Version = "v9.9.9"

	if got := Get(); got.Version != "v9.9.9" || got.Commit != Commit || got.Date != Date {
		t.Errorf("Get() = %+v", got)
	}
	if !strings.Contains(String(), "v9.9.9") {
		t.Errorf("String() = %q", String())
	}
	if !strings.Contains(Template(), "{{.Name}} version v9.9.9") {
		t.Errorf("Template() = %q", Template())
	}
}
