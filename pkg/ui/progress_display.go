package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ProgressDisplay prints a single progress line while solutions are written.
// In debug mode it prints one line per file instead.
type ProgressDisplay struct {
	mu             sync.Mutex
	out            io.Writer
	totalProblems  int
	totalSolutions int
	problemIndex   int
	currentProblem string
	savedCount     int
	skippedCount   int
	bytesWritten   int64
	startTime      time.Time
	isDebug        bool
}

// NewProgressDisplay creates a new progress display writing to the terminal output
func NewProgressDisplay(debug bool) *ProgressDisplay {
	return &ProgressDisplay{
		out:       Output(),
		startTime: time.Now(),
		isDebug:   debug,
	}
}

// Start records the size of the run
func (p *ProgressDisplay) Start(problems, submissions int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.totalProblems = problems
	p.totalSolutions = submissions
	p.startTime = time.Now()

	if !IsQuietMode() {
		fmt.Fprintf(p.out, "%s %d problems, %d accepted submissions\n",
			Magenta("→"), problems, submissions)
	}
}

// StartProblem marks the start of a new problem directory
func (p *ProgressDisplay) StartProblem(slug string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.problemIndex++
	p.currentProblem = slug

	if p.isDebug && !IsQuietMode() {
		fmt.Fprintf(p.out, "\n%s [%d/%d] %s\n", Magenta("→"), p.problemIndex, p.totalProblems, slug)
		return
	}
	p.printProgress()
}

// SolutionSaved marks a solution file as written
func (p *ProgressDisplay) SolutionSaved(path string, size int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.savedCount++
	p.bytesWritten += size

	if p.isDebug && !IsQuietMode() {
		fmt.Fprintf(p.out, "%s %s • %s\n",
			Green("✓"),
			filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)),
			formatBytes(size),
		)
		return
	}
	p.printProgress()
}

// SolutionSkipped marks a submission whose code could not be found
func (p *ProgressDisplay) SolutionSkipped(problem, submissionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.skippedCount++

	if p.isDebug && !IsQuietMode() {
		fmt.Fprintf(p.out, "%s %s submission %s: code not found\n", Yellow("⚠"), problem, submissionID)
		return
	}
	p.printProgress()
}

// printProgress prints the minimal progress line
func (p *ProgressDisplay) printProgress() {
	if IsQuietMode() {
		return
	}

	done := p.savedCount + p.skippedCount
	progress := 0.0
	if p.totalSolutions > 0 {
		progress = float64(done) / float64(p.totalSolutions)
	}
	barWidth := 20
	filled := int(progress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("━", filled) + strings.Repeat("─", barWidth-filled)

	line := fmt.Sprintf("%s [%s] %d/%d • %s",
		Cyan(fmt.Sprintf("%d/%d", p.problemIndex, p.totalProblems)),
		bar,
		done,
		p.totalSolutions,
		formatBytes(p.bytesWritten),
	)

	if p.currentProblem != "" {
		line += fmt.Sprintf(" • %s", p.currentProblem)
	}
	if p.skippedCount > 0 {
		line += fmt.Sprintf(" • %s", Yellow(fmt.Sprintf("%d skipped", p.skippedCount)))
	}

	fmt.Fprintf(p.out, "\r%s\r%s", strings.Repeat(" ", 120), line)
}

// Complete marks the entire run as complete
func (p *ProgressDisplay) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if IsQuietMode() {
		return
	}

	fmt.Fprintf(p.out, "\n\n%s Saved %d solutions across %d problems\n",
		Green("✓"),
		p.savedCount,
		p.totalProblems,
	)
	fmt.Fprintf(p.out, "  %s %s in %s\n",
		Dim("•"),
		formatBytes(p.bytesWritten),
		formatDuration(time.Since(p.startTime)),
	)
	if p.skippedCount > 0 {
		fmt.Fprintf(p.out, "  %s %d submissions had no retrievable code\n", Dim("•"), p.skippedCount)
	}
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}

// formatBytes formats bytes in a human-readable way
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
