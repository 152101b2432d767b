package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"leetdl/pkg/downloader"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(nil)
		SetQuietMode(false)
	})
	return &buf
}

func TestQuietModeSuppressesInfo(t *testing.T) {
	buf := captureOutput(t)

	SetQuietMode(true)
	PrintInfo("Output", "out")
	PrintSuccess("done")
	PrintWarning("careful")
	PrintError("failed", errors.New("boom"))

	out := buf.String()
	assert.NotContains(t, out, "done")
	assert.NotContains(t, out, "careful")
	assert.Contains(t, out, "failed: boom")
}

func TestPrintInfo(t *testing.T) {
	buf := captureOutput(t)

	PrintInfo("Username", "tester")
	assert.Contains(t, buf.String(), "Username")
	assert.Contains(t, buf.String(), "tester")
}

func TestProgressDisplay(t *testing.T) {
	buf := captureOutput(t)

	p := NewProgressDisplay(false)
	p.Start(2, 3)
	p.StartProblem("two-sum")
	p.SolutionSaved("/out/two-sum/go/solution_1.go", 2048)
	p.SolutionSkipped("two-sum", "42")
	p.StartProblem("add-two-numbers")
	p.SolutionSaved("/out/add-two-numbers/go/solution_1.go", 10)
	p.Complete()

	out := buf.String()
	assert.Contains(t, out, "2 problems, 3 accepted submissions")
	assert.Contains(t, out, "1 skipped")
	assert.Contains(t, out, "Saved 2 solutions across 2 problems")
	assert.Contains(t, out, "1 submissions had no retrievable code")
}

func TestProgressDisplayDebug(t *testing.T) {
	buf := captureOutput(t)

	p := NewProgressDisplay(true)
	p.Start(1, 1)
	p.StartProblem("two-sum")
	p.SolutionSaved("/out/two-sum/python3/solution_1.py", 12)

	assert.Contains(t, buf.String(), "[1/1] two-sum")
	assert.Contains(t, buf.String(), "python3/solution_1.py")
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	s := &downloader.Summary{
		RunID:     "run-1",
		OutputDir: "out",
		Problems:  2,
		Written:   3,
		Skipped:   1,
		Duration:  90 * time.Second,
		Languages: map[string]*downloader.LanguageStats{
			"python3": {Written: 2, Skipped: 1},
			"c++":     {Written: 1},
		},
	}

	RenderSummary(&buf, s)

	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "python3")
	assert.Contains(t, out, "c++")
	assert.Contains(t, out, "2 problems in out (1m30s)")
	assert.Less(t, strings.Index(out, "c++"), strings.Index(out, "python3"), "hand-built summaries list languages alphabetically")
}

type recordingSender struct {
	titles []string
}

func (r *recordingSender) Send(title, message string) error {
	r.titles = append(r.titles, title)
	return nil
}

func TestNotifier(t *testing.T) {
	buf := captureOutput(t)
	sender := &recordingSender{}

	n := NewNotifierWithSender(sender)
	n.SendSuccess("leetdl", "3 solutions saved")
	n.SendError("leetdl", "login failed")

	assert.Equal(t, []string{"leetdl", "leetdl"}, sender.titles)
	assert.Contains(t, buf.String(), "3 solutions saved")
	assert.Contains(t, buf.String(), "login failed")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "2.0 KB", formatBytes(2048))
	assert.Equal(t, "1.5 MB", formatBytes(1536*1024))
}
