// Package batch runs the excision engine over a worklist, one document at a
// time, and records what happened to each.
package batch

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jsnanigans/excise/internal/config"
	"github.com/jsnanigans/excise/pkg/excise"
)

// Documents is the storage the runner reads from and writes back to.
type Documents interface {
	ReadLines(path string) ([]string, error)
	WriteLinesAtomic(path string, lines []string) error
}

// Runner processes a worklist sequentially. Failures are recorded and the
// run moves on to the next target; nothing is retried.
type Runner struct {
	Docs   Documents
	Config *config.Config
	Logger *zap.Logger

	// DryRun skips writes.
	DryRun bool
	// Preview attaches a rendering of each change to successful outcomes of
	// a dry run, showing Context unchanged lines around it.
	Preview Preview
	Context int
}

// Preview selects how dry-run changes are rendered.
type Preview int

const (
	// PreviewNone attaches nothing.
	PreviewNone Preview = iota
	// PreviewDiff attaches a line diff.
	PreviewDiff
	// PreviewHighlight attaches the block in red and its replacement in green.
	PreviewHighlight
)

// Report is the result of one run.
type Report struct {
	RunID    string    `json:"run_id"`
	DryRun   bool      `json:"dry_run"`
	Started  time.Time `json:"started"`
	Outcomes []Outcome `json:"outcomes"`
	Removed  int       `json:"removed"`
	Failed   int       `json:"failed"`
}

// HasFailures reports whether any document was not processed successfully.
func (r *Report) HasFailures() bool { return r.Failed > 0 }

// Run processes every target in order.
func (r *Runner) Run() *Report {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	report := &Report{
		RunID:    uuid.NewString(),
		DryRun:   r.DryRun,
		Started:  time.Now(),
		Outcomes: make([]Outcome, 0, len(r.Config.Targets)),
	}
	logger = logger.With(zap.String("run_id", report.RunID))
	opts := r.Config.ExciseOptions()

	for _, target := range r.Config.Targets {
		out := r.process(target, opts, logger)
		if out.OK() {
			report.Removed++
		} else {
			report.Failed++
		}
		report.Outcomes = append(report.Outcomes, out)
	}

	logger.Info("Run finished",
		zap.Int("targets", len(r.Config.Targets)),
		zap.Int("removed", report.Removed),
		zap.Int("failed", report.Failed),
		zap.Bool("dry_run", r.DryRun))
	return report
}

func (r *Runner) process(target config.Target, opts []excise.Option, logger *zap.Logger) Outcome {
	out := Outcome{Path: target.Path, Name: target.Name, Hint: target.Hint}
	log := logger.With(zap.String("path", target.Path), zap.String("name", target.Name))

	lines, err := r.Docs.ReadLines(target.Path)
	if err != nil {
		log.Warn("Read failed", zap.Error(err))
		return fail(out, IOFailure, err)
	}
	out.LinesBefore = len(lines)

	newLines, b, err := excise.Excise(lines, target.Name, target.Hint, opts...)
	if err != nil {
		log.Warn("Declaration not excised", zap.Int("hint", target.Hint), zap.Error(err))
		return fail(out, kindOf(err), err)
	}
	out.StartLine = b.Start + 1
	out.EndLine = b.End
	out.LinesAfter = len(newLines)
	log.Debug("Declaration located",
		zap.Int("hint", target.Hint),
		zap.Int("decl_line", b.DeclLine+1),
		zap.Int("start", b.Start+1),
		zap.Int("end", b.End))

	if r.DryRun {
		out.Preview = r.preview(lines, newLines, b, target.Name, opts)
		out.Kind = Removed
		return out
	}

	if err := r.Docs.WriteLinesAtomic(target.Path, newLines); err != nil {
		log.Warn("Write failed", zap.Error(err))
		return fail(out, IOFailure, err)
	}
	out.Kind = Removed
	out.Written = true
	return out
}

func (r *Runner) preview(lines, newLines []string, b excise.Bounds, name string, opts []excise.Option) string {
	switch r.Preview {
	case PreviewDiff:
		return excise.FormatDiff(excise.LineDiff(lines, newLines), r.Context)
	case PreviewHighlight:
		lo, hi := b.Start-r.Context, b.End+r.Context
		if lo < 0 {
			lo = 0
		}
		if hi > len(lines) {
			hi = len(lines)
		}
		// The replacement is the one element the excision inserted.
		window := excise.Bounds{DeclLine: b.DeclLine - lo, Start: b.Start - lo, End: b.End - lo}
		return excise.Visualize(lines[lo:hi], window, newLines[b.Start])
	default:
		return ""
	}
}

func fail(out Outcome, kind Kind, err error) Outcome {
	out.Kind = kind
	out.Err = err
	out.StartLine, out.EndLine, out.LinesAfter = 0, 0, 0
	return out
}
