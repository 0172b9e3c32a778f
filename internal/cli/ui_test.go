package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinter(t *testing.T) {
	tests := []struct {
		name  string
		print func(p printer)
		want  []string
	}{
		{"success", func(p printer) { p.success("wrote %d", 3) }, []string{iconSuccess, "wrote 3"}},
		{"warning", func(p printer) { p.warning("nothing to do") }, []string{iconWarning, "nothing to do"}},
		{"info", func(p printer) { p.info("serving on %s", ":8080") }, []string{iconInfo, "serving on :8080"}},
		{"detail", func(p printer) { p.detail("Directory: %s", "/tmp/x") }, []string{"  ", "Directory: /tmp/x"}},
		{"file", func(p printer) { p.file("out/a_0.png") }, []string{iconArrow, "out/a_0.png"}},
		{"key value", func(p printer) { p.keyValue("Colors", "3") }, []string{"Colors", "3"}},
		{"fresh batch", func(p printer) { p.batch(5, 2, false) }, []string{"5 colors", "2 variants", iconFresh}},
		{"cached batch", func(p printer) { p.batch(5, 2, true) }, []string{iconCached}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(newPrinter(&buf))
			got := buf.String()
			if !strings.HasSuffix(got, "\n") {
				t.Errorf("output %q should end with a newline", got)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output %q should contain %q", got, w)
				}
			}
		})
	}
}
