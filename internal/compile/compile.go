// Package compile runs one compilation: load the registry, resolve the
// scope chain, render the artifacts, and place them in the target
// repository. Registry validation is all-or-nothing; artifact writes
// are not, so one broken path never blocks the rest of the run.
package compile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"egokit/internal/inject"
	"egokit/internal/policy"
	"egokit/internal/registry"
	"egokit/internal/render"
	"egokit/internal/resolver"
)

// Status is the per-artifact outcome of a run.
type Status string

const (
	StatusWritten      Status = "written"
	StatusSkipped      Status = "skipped"
	StatusNeedsConfirm Status = "needs-confirmation"
	StatusFailed       Status = "failed"
)

// Outcome reports what happened to one artifact path.
type Outcome struct {
	Path   string
	Status Status
	Err    error
}

// Options configure one compilation run.
type Options struct {
	RegistryDir string
	RepoDir     string
	Chain       []policy.ScopeKey
	// Force writes managed artifacts even when existing markers are
	// malformed, without consulting Confirm.
	Force bool
	// DryRun computes every outcome without touching the filesystem.
	DryRun bool
	// Confirm gates appends into files with malformed markers. A nil
	// Confirm declines everything.
	Confirm func(path string) bool
	Logger  *zap.Logger
}

// Result is the full outcome of a run, including the rendered primary
// body for previews.
type Result struct {
	RunID    string
	Context  *resolver.Context
	Primary  string
	Outcomes []Outcome
}

// Failed reports whether any artifact failed.
func (r *Result) Failed() bool {
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Run executes the pipeline. A registry or resolution error returns
// before anything is written; per-artifact errors are recorded in the
// outcomes and the run continues.
func Run(opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	runID := uuid.NewString()
	log = log.With(zap.String("run_id", runID))

	reg, err := registry.Load(opts.RegistryDir)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	ctx, err := resolver.Resolve(&reg.Charter, reg.Behaviors, opts.Chain)
	if err != nil {
		return nil, fmt.Errorf("resolve scopes: %w", err)
	}
	log.Info("resolved policy",
		zap.String("chain", ctx.ChainString()),
		zap.Int("categories", len(ctx.Categories)))

	res := &Result{RunID: runID, Context: ctx, Primary: render.Primary(ctx)}
	res.Outcomes = append(res.Outcomes, placePrimary(opts, log, res.Primary))
	for _, doc := range render.SecondaryDocs(ctx) {
		res.Outcomes = append(res.Outcomes, placeWhole(opts, log, doc))
	}
	return res, nil
}

// placePrimary injects the managed region into the primary artifact.
func placePrimary(opts Options, log *zap.Logger, body string) Outcome {
	path := render.PrimaryPath
	abs := filepath.Join(opts.RepoDir, path)

	existing, err := readIfPresent(abs)
	if err != nil {
		return Outcome{Path: path, Status: StatusFailed, Err: err}
	}
	r := inject.Inject(existing, body, render.BeginMarker, render.EndMarker)
	if r.State == inject.StateMalformed && !opts.Force {
		if opts.Confirm == nil || !opts.Confirm(path) {
			log.Warn("malformed markers, write withheld", zap.String("path", path))
			return Outcome{Path: path, Status: StatusNeedsConfirm}
		}
	}
	return write(opts, log, path, abs, existing, r.Text)
}

// placeWhole writes an unmanaged artifact in full.
func placeWhole(opts Options, log *zap.Logger, doc render.Artifact) Outcome {
	abs := filepath.Join(opts.RepoDir, filepath.FromSlash(doc.Path))
	existing, err := readIfPresent(abs)
	if err != nil {
		return Outcome{Path: doc.Path, Status: StatusFailed, Err: err}
	}
	return write(opts, log, doc.Path, abs, existing, doc.Body)
}

func write(opts Options, log *zap.Logger, path, abs, existing, content string) Outcome {
	if existing == content {
		return Outcome{Path: path, Status: StatusSkipped}
	}
	if opts.DryRun {
		return Outcome{Path: path, Status: StatusWritten}
	}
	if err := writeFile(abs, content); err != nil {
		log.Error("write failed", zap.String("path", path), zap.Error(err))
		return Outcome{Path: path, Status: StatusFailed, Err: err}
	}
	log.Debug("wrote artifact", zap.String("path", path))
	return Outcome{Path: path, Status: StatusWritten}
}

func readIfPresent(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// writeFile creates parent directories and flushes before close so a
// reported success means the bytes reached the file.
func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return err
	}
	return f.Sync()
}
