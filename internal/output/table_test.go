package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableRendersRowsInOrder(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{"KEY", "DISPLAY"})
	table.AddRow("ethics", "Ethics")
	table.AddRow("prayer", "Prayer")
	table.Render()

	got := buf.String()
	for _, want := range []string{"KEY", "DISPLAY", "ethics", "Ethics", "prayer", "Prayer"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "ethics") > strings.Index(got, "prayer") {
		t.Errorf("rows rendered out of insertion order:\n%s", got)
	}
	if strings.Index(got, "KEY") > strings.Index(got, "ethics") {
		t.Errorf("header rendered after rows:\n%s", got)
	}
}

func TestTableKeepsLongCellsUnwrapped(t *testing.T) {
	var buf bytes.Buffer
	long := "In the quiet spaces between obligation and desire, the examined life keeps asking what we owe one another"

	table := NewTable(&buf, []string{"TITLE"})
	table.AddRow(long)
	table.Render()

	var found bool
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, long) {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("long cell was wrapped across lines:\n%s", buf.String())
	}
}
