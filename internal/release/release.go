// Package release runs the content release pipeline: commit the working
// tree, push it, build the site, and publish the artifact. Step failure
// policy is data, not code: each step declares whether its failure aborts
// the pipeline or is tolerated and recorded with a note.
package release

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config holds the pipeline settings.
type Config struct {
	// WorkDir is the repository the pipeline operates in.
	WorkDir string
	// BuildCommand builds the static site.
	BuildCommand []string
	// PublishCommand deploys the built artifact to the hosting target.
	PublishCommand []string
	// PublishTimeout bounds the publish step. All other steps inherit the
	// caller's context; publish is the only step talking to a remote
	// hosting service and must not hang the request forever.
	PublishTimeout time.Duration
}

// Result is the outcome of a pipeline run. Steps lists what completed, in
// order, including the short-circuit entry for a clean working tree.
type Result struct {
	ID         string   `json:"releaseId"`
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	Steps      []string `json:"steps"`
	DeployedAt string   `json:"deployedAt,omitempty"`

	// Err carries the fatal step error; it is rendered by the API layer,
	// not serialised directly.
	Err error `json:"-"`
}

// Runner executes the pipeline.
type Runner struct {
	cfg  Config
	exec Executor
	now  func() time.Time
}

// Option configures the runner.
type Option func(*Runner)

// WithExecutor injects a command executor (primarily for tests).
func WithExecutor(e Executor) Option {
	return func(r *Runner) {
		if e != nil {
			r.exec = e
		}
	}
}

// WithClock injects a clock (primarily for tests).
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// New constructs a runner. Zero-value config fields fall back to defaults.
func New(cfg Config, opts ...Option) *Runner {
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}
	if len(cfg.BuildCommand) == 0 {
		cfg.BuildCommand = []string{"npm", "run", "build"}
	}
	if len(cfg.PublishCommand) == 0 {
		cfg.PublishCommand = []string{"npx", "wrangler", "deploy"}
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = time.Minute
	}
	r := &Runner{cfg: cfg, exec: commandExecutor{}, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// step is one pipeline stage. A non-empty tolerated note means the step's
// failure does not abort the pipeline; the note is recorded instead of the
// done entry.
type step struct {
	label     string
	argv      []string
	done      string
	tolerated string
	timeout   time.Duration
	errPrefix string
}

func (r *Runner) steps() []step {
	ts := r.now().UTC().Format(time.RFC3339)
	return []step{
		{label: "stage", argv: []string{"git", "add", "."}, done: "Added files to git"},
		{label: "commit", argv: []string{"git", "commit", "-m", "Content update: " + ts}, done: "Committed changes to git"},
		{label: "push", argv: []string{"git", "push"}, done: "Pushed to git remote", tolerated: "Pushed to git remote (with warning)"},
		{label: "build", argv: r.cfg.BuildCommand, done: "Built project successfully"},
		{label: "publish", argv: r.cfg.PublishCommand, done: "Published site", timeout: r.cfg.PublishTimeout, errPrefix: "site publish failed"},
	}
}

// Deploy runs the pipeline. Steps are strictly sequential; a fatal failure
// stops immediately and the result carries the steps completed so far. The
// run is not transactional: a failure after commit leaves the repository
// committed (and possibly pushed) without a matching deployment.
func (r *Runner) Deploy(ctx context.Context) Result {
	id := uuid.NewString()
	log := slog.With(slog.String("release_id", id))

	log.Info("release: checking working tree")
	out, err := r.exec.Run(ctx, r.cfg.WorkDir, "git", "status", "--porcelain")
	if err != nil {
		log.Error("release: status check failed", slog.String("error", err.Error()))
		return Result{ID: id, Message: "Deployment failed", Err: fmt.Errorf("status check failed: %w", err)}
	}
	if strings.TrimSpace(out) == "" {
		log.Info("release: working tree clean, nothing to deploy")
		return Result{
			ID:      id,
			Success: true,
			Message: "No changes to deploy",
			Steps:   []string{"No uncommitted changes found"},
		}
	}

	steps := []string{"Found changes to commit"}
	for _, st := range r.steps() {
		log.Info("release: running step", slog.String("step", st.label))

		stepCtx := ctx
		cancel := func() {}
		if st.timeout > 0 {
			stepCtx, cancel = context.WithTimeout(ctx, st.timeout)
		}
		_, runErr := r.exec.Run(stepCtx, r.cfg.WorkDir, st.argv[0], st.argv[1:]...)
		cancel()

		if runErr != nil {
			if st.tolerated != "" {
				log.Warn("release: step failed, continuing",
					slog.String("step", st.label),
					slog.String("error", runErr.Error()))
				steps = append(steps, st.tolerated)
				continue
			}
			if st.errPrefix != "" {
				runErr = fmt.Errorf("%s: %w", st.errPrefix, runErr)
			}
			log.Error("release: step failed",
				slog.String("step", st.label),
				slog.String("error", runErr.Error()))
			return Result{ID: id, Message: "Deployment failed", Steps: steps, Err: runErr}
		}
		steps = append(steps, st.done)
	}

	log.Info("release: complete")
	return Result{
		ID:         id,
		Success:    true,
		Message:    "Successfully deployed",
		Steps:      steps,
		DeployedAt: r.now().UTC().Format(time.RFC3339),
	}
}
