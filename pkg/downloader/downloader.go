package downloader

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"leetdl/pkg/config"
	"leetdl/pkg/leetcode"
	"leetdl/pkg/logger"
	"leetdl/pkg/markdown"
	"leetdl/pkg/organizer"
	"leetdl/pkg/storage"
)

// ReadmeName is the file name of the problem description
const ReadmeName = "README.md"

// Downloader orchestrates a download run: login check, listing, grouping
// and writing the problem/language tree
type Downloader struct {
	client    LeetCodeClient
	codes     CodeFetcher
	outputDir string
	baseURL   string
	logger    logger.Logger
	progress  Progress
	runID     string
}

// New creates a Downloader that writes under cfg.OutputDir
func New(client LeetCodeClient, cfg *config.Config, log logger.Logger) *Downloader {
	if log == nil {
		log = logger.GetLogger()
	}

	runID := uuid.NewString()
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = leetcode.BaseURL
	}

	return &Downloader{
		client:    client,
		codes:     client,
		outputDir: cfg.OutputDir,
		baseURL:   baseURL,
		logger:    log.WithField("run_id", runID),
		progress:  nopProgress{},
		runID:     runID,
	}
}

// SetCodeFetcher replaces the source extraction strategy
func (d *Downloader) SetCodeFetcher(f CodeFetcher) {
	d.codes = f
}

// SetProgress sets the receiver of progress events
func (d *Downloader) SetProgress(p Progress) {
	if p == nil {
		p = nopProgress{}
	}
	d.progress = p
}

// RunID returns the identifier attached to every log line of this run
func (d *Downloader) RunID() string {
	return d.runID
}

// Run downloads every accepted submission. Nothing is written unless the
// login check and the listing both succeed. The returned summary is non-nil
// even when the run aborts part way.
func (d *Downloader) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	summary := newSummary(d.runID)
	summary.OutputDir = d.outputDir
	defer func() {
		summary.Duration = time.Since(start)
	}()

	d.logger.WithField("output_dir", d.outputDir).Info("Starting download run")

	username, err := d.client.VerifyLogin(ctx)
	if err != nil {
		d.logger.WithError(err).Error("Login check failed")
		return summary, fmt.Errorf("login: %w", err)
	}
	summary.Username = username

	submissions, err := d.client.ListAcceptedSubmissions(ctx)
	if err != nil {
		d.logger.WithError(err).Error("Failed to list submissions")
		return summary, fmt.Errorf("list submissions: %w", err)
	}

	languages := organizer.Languages(submissions)
	logger.LogPhase(d.logger, "list", map[string]interface{}{
		"submissions": len(submissions),
		"languages":   languages,
	})

	problems := organizer.Group(submissions)
	summary.Problems = len(problems)

	store, err := storage.NewManager(d.outputDir)
	if err != nil {
		return summary, err
	}

	d.progress.Start(len(problems), len(submissions))

	for _, p := range problems {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := d.writeProblem(ctx, store, p, summary); err != nil {
			return summary, fmt.Errorf("problem %s: %w", p.Slug, err)
		}
	}

	d.progress.Complete()
	logger.LogPhase(d.logger, "write", map[string]interface{}{
		"problems": summary.Problems,
		"written":  summary.Written,
		"skipped":  summary.Skipped,
		"bytes":    store.GetBytesWritten(),
	})

	return summary, nil
}

// writeProblem writes the README and every solution of one problem
func (d *Downloader) writeProblem(ctx context.Context, store *storage.Manager, p organizer.Problem, summary *Summary) error {
	log := d.logger.WithField("problem", p.Slug)
	d.progress.StartProblem(p.Slug)

	if _, err := store.EnsureDir(p.Slug); err != nil {
		return err
	}

	// the description is looked up with the newest submission of the
	// first language seen for this problem
	titleSlug := p.Languages[0].Submissions[0].TitleSlug
	if err := d.writeDescription(ctx, store, p.Slug, titleSlug); err != nil {
		return err
	}
	summary.Readmes++
	log.Debug("README written")

	for _, bucket := range p.Languages {
		langDir := organizer.LanguageDir(bucket.Lang)
		if _, err := store.EnsureDir(p.Slug, langDir); err != nil {
			return err
		}

		for i, sub := range bucket.Submissions {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := d.writeSolution(ctx, store, p.Slug, langDir, i+1, sub, summary); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeDescription fetches the problem description and writes README.md
func (d *Downloader) writeDescription(ctx context.Context, store *storage.Manager, slug, titleSlug string) error {
	q, err := d.client.FetchQuestion(ctx, titleSlug)
	if err != nil {
		return fmt.Errorf("fetch description: %w", err)
	}

	doc := markdown.RenderDescription(markdown.Question{
		Title:      q.Title,
		Difficulty: q.Difficulty,
		Content:    q.Content,
	}, leetcode.GetProblemURL(d.baseURL, titleSlug))

	_, err = store.WriteFile([]byte(doc), slug, ReadmeName)
	return err
}

// writeSolution fetches one submission and writes it at its recency rank.
// A missing source is skipped without renumbering the others.
func (d *Downloader) writeSolution(ctx context.Context, store *storage.Manager, slug, langDir string, rank int, sub leetcode.Submission, summary *Summary) error {
	id := sub.ID.String()

	code, found, err := d.codes.FetchSubmissionCode(ctx, id)
	if err != nil {
		logger.LogSolution(d.logger, slug, sub.Lang, id, "", false, err)
		return fmt.Errorf("fetch submission %s: %w", id, err)
	}
	if !found {
		summary.recordSkipped(sub.Lang)
		logger.LogSolution(d.logger, slug, sub.Lang, id, "", false, nil)
		d.progress.SolutionSkipped(slug, id)
		return nil
	}

	filename := organizer.SolutionFilename(rank, sub.Lang)
	path, err := store.WriteFile([]byte(code), slug, langDir, filename)
	if err != nil {
		logger.LogSolution(d.logger, slug, sub.Lang, id, filename, false, err)
		return err
	}

	summary.recordWritten(sub.Lang)
	logger.LogSolution(d.logger, slug, sub.Lang, id, filename, true, nil)
	d.progress.SolutionSaved(path, int64(len(code)))
	return nil
}
