package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/stretchr/testify/assert"
)

func newTestPrinter(theme string) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errb bytes.Buffer
	return NewPrinter(&out, &errb, ThemeByName(theme), true), &out, &errb
}

func TestPrinter_OKAndFailStreams(t *testing.T) {
	p, out, errb := newTestPrinter("classic")

	p.OK("added")
	p.Fail("boom")

	assert.Equal(t, "✔ added\n", out.String())
	assert.Equal(t, "✖ boom\n", errb.String())
}

func TestPrinter_TaskLine(t *testing.T) {
	p, _, _ := newTestPrinter("mono")

	assert.Equal(t, "[ ] [3] water plants", p.TaskLine(model.Task{ID: 3, Title: "water plants"}))
	assert.Equal(t, "[x] [4] done thing", p.TaskLine(model.Task{ID: 4, Title: "done thing", Done: true}))

	long := strings.Repeat("é", 100)
	line := p.TaskLine(model.Task{ID: 1, Title: long})
	assert.True(t, strings.HasSuffix(line, "..."))
}

func TestPrinter_PanelFramesLines(t *testing.T) {
	p, out, _ := newTestPrinter("mono")

	p.Panel([]string{"one", "three"})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "+"))
	assert.Contains(t, lines[1], "one")
	assert.Contains(t, lines[2], "three")
}

func TestThemeByName(t *testing.T) {
	assert.Equal(t, "neon", ThemeByName("NEON").Name)
	assert.Equal(t, "mono", ThemeByName("mono").Name)
	assert.Equal(t, "classic", ThemeByName("whatever").Name)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1))
	assert.Equal(t, "██████████ 100%", ProgressBar(3, 3, 10))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
}
