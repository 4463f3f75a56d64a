package importer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/conorfennell/myeng/internal/domain"
	"github.com/conorfennell/myeng/internal/fingerprint"
	"github.com/conorfennell/myeng/internal/gitsource"
	"github.com/conorfennell/myeng/internal/parser"
)

// QuestionStore is where imported questions land.
type QuestionStore interface {
	InsertQuestion(ctx context.Context, q domain.Question) (int64, error)
	ListQuestions(ctx context.Context, theme string) ([]domain.Question, error)
}

// Report summarizes one import run.
type Report struct {
	Files    int
	Parsed   int
	Inserted int
	Skipped  int
	Errors   []error
}

// Importer loads markdown question banks into the store.
type Importer struct {
	store    QuestionStore
	reposDir string
	logger   *zap.Logger
}

// New creates an Importer. Remote banks are checked out under reposDir.
func New(store QuestionStore, reposDir string, logger *zap.Logger) *Importer {
	return &Importer{store: store, reposDir: reposDir, logger: logger}
}

// Run imports every .md file under source, a local directory or a git URL.
// Questions already stored under the same theme (by fingerprint) are skipped,
// so running it again over the same bank inserts nothing.
func (im *Importer) Run(ctx context.Context, source string) (Report, error) {
	dir := source
	if gitsource.IsRemote(source) {
		localPath, err := gitsource.LocalPath(im.reposDir, source)
		if err != nil {
			return Report{}, err
		}
		if err := os.MkdirAll(im.reposDir, os.ModePerm); err != nil {
			return Report{}, fmt.Errorf("failed to create repos directory: %w", err)
		}
		if err := gitsource.Sync(ctx, source, localPath, im.logger); err != nil {
			return Report{}, err
		}
		dir = localPath
	}

	im.logger.Info("importing question bank", zap.String("source", source), zap.String("dir", dir))

	var report Report
	known := make(map[string]map[string]bool) // theme -> fingerprints

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		report.Files++
		questions, parseErr := parser.ParseFile(path)
		if parseErr != nil {
			report.Errors = append(report.Errors, fmt.Errorf("parsing %s: %w", path, parseErr))
			return nil
		}

		for _, q := range questions {
			report.Parsed++

			fingerprints, err := im.fingerprints(ctx, q.Theme, known)
			if err != nil {
				report.Errors = append(report.Errors, err)
				continue
			}

			fp := fingerprint.Of(q)
			if fingerprints[fp] {
				report.Skipped++
				continue
			}

			id, err := im.store.InsertQuestion(ctx, q)
			if err != nil {
				report.Errors = append(report.Errors, fmt.Errorf("db insert from %s: %w", path, err))
				continue
			}
			fingerprints[fp] = true
			report.Inserted++
			im.logger.Debug("question imported", zap.Int64("question_id", id), zap.String("theme", q.Theme))
		}
		return nil
	})
	if walkErr != nil {
		return report, fmt.Errorf("error walking directory %s: %w", dir, walkErr)
	}

	im.logger.Info("import complete",
		zap.String("source", source),
		zap.Int("files", report.Files),
		zap.Int("parsed", report.Parsed),
		zap.Int("inserted", report.Inserted),
		zap.Int("skipped", report.Skipped),
		zap.Int("errors", len(report.Errors)),
	)
	return report, nil
}

// fingerprints returns the fingerprints stored for a theme, loading them on first use.
func (im *Importer) fingerprints(ctx context.Context, theme string, known map[string]map[string]bool) (map[string]bool, error) {
	if fps, ok := known[theme]; ok {
		return fps, nil
	}
	stored, err := im.store.ListQuestions(ctx, theme)
	if err != nil {
		return nil, fmt.Errorf("db check for theme %q: %w", theme, err)
	}
	fps := make(map[string]bool, len(stored))
	for _, q := range stored {
		fps[fingerprint.Of(q)] = true
	}
	known[theme] = fps
	return fps, nil
}
