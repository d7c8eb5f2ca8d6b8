package cmdutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestNewTable(t *testing.T) {
	var buf bytes.Buffer
	w := NewTable(&buf, "NAME", "TTL")
	w.Write([]byte("www.example.com.\t300\n"))
	w.Flush()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "----") || !strings.Contains(lines[1], "---") {
		t.Errorf("unexpected underline %q", lines[1])
	}
	if !strings.Contains(lines[2], "www.example.com.   300") {
		t.Errorf("columns not aligned: %q", lines[2])
	}
}

func TestOutputFormat(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	AddOutputFlag(cmd)

	if got, err := OutputFormat(cmd); err != nil || got != FormatTable {
		t.Errorf("default = %q, %v", got, err)
	}
	_ = cmd.Flags().Set("output", "yaml")
	if _, err := OutputFormat(cmd); err == nil {
		t.Error("expected error for unsupported format")
	}
}
