// Command tddorc drives a project through an automated PLAN/RED/GREEN/
// REFACTOR TDD cycle, one test at a time, handing state between phases
// via git notes. Structurally this mirrors the teacher's cmd/orc/main.go
// (urfave/cli/v3, findProjectRoot walking up for a marker, signal.
// NotifyContext around the long-running command) with the workflow
// loop itself replaced by internal/orchestrator.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	cli "github.com/urfave/cli/v3"

	"github.com/ntolman/tddorc/internal/config"
	"github.com/ntolman/tddorc/internal/doctor"
	"github.com/ntolman/tddorc/internal/docs"
	"github.com/ntolman/tddorc/internal/gitfacade"
	"github.com/ntolman/tddorc/internal/invoker"
	"github.com/ntolman/tddorc/internal/model"
	"github.com/ntolman/tddorc/internal/orchestrator"
	"github.com/ntolman/tddorc/internal/phase"
	"github.com/ntolman/tddorc/internal/prompt"
	"github.com/ntolman/tddorc/internal/scaffold"
	"github.com/ntolman/tddorc/internal/testrunner"
	"github.com/ntolman/tddorc/internal/tools"
	"github.com/ntolman/tddorc/internal/ux"
)

// exitError carries a process exit code alongside the underlying error,
// following spec.md §6: 0 success, 1 runtime failure, 2 configuration
// error, 3 I/O or notes error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func configErr(err error) error { return &exitError{code: 2, err: err} }
func ioErr(err error) error     { return &exitError{code: 3, err: err} }
func runErr(err error) error    { return &exitError{code: 1, err: err} }

func main() {
	app := &cli.Command{
		Name:        "tddorc",
		Usage:       "LLM-agent TDD orchestration engine",
		Description: "Run 'tddorc docs' for documentation on configuration, phases, notes, and error handling.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "project", Aliases: []string{"p"}, Usage: "Project root (defaults to the current directory)"},
		},
		Commands: []*cli.Command{
			runCmd(),
			resumeCmd(),
			statusCmd(),
			historyCmd(),
			rollbackCmd(),
			doctorCmd(),
			initCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		code := 1
		var ee *exitError
		if as(err, &ee) {
			code = ee.code
		}
		os.Exit(code)
	}
}

// as is a tiny errors.As wrapper kept local to avoid importing "errors"
// just for its one call site in main.
func as(err error, target **exitError) bool {
	for err != nil {
		if ee, ok := err.(*exitError); ok {
			*target = ee
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func projectRoot(cmd *cli.Command) (string, error) {
	if p := cmd.String("project"); p != "" {
		return filepath.Abs(p)
	}
	return findProjectRoot()
}

// findProjectRoot walks up from cwd looking for a .tddorc marker or a
// .git directory, the same structural idiom as the teacher's
// findProjectRoot (there: .orc/config.yaml).
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".tddorc")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no .tddorc or .git found (searched from cwd to root)")
		}
		dir = parent
	}
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	root, err := projectRoot(cmd)
	if err != nil {
		return nil, configErr(err)
	}
	cfg, err := config.Load(root)
	if err != nil {
		return nil, configErr(err)
	}
	return cfg, nil
}

func buildOrchestrator(cfg *config.Config) (*orchestrator.Orchestrator, *gitfacade.Repo, *gitfacade.NotesStore, error) {
	repo := &gitfacade.Repo{Root: cfg.ProjectRoot}
	notes := gitfacade.NewNotesStore(repo)

	inv, err := invoker.New(cfg.APIKey)
	if err != nil {
		return nil, nil, nil, configErr(err)
	}

	agents := prompt.Agents(cfg.Model)
	for ph, agentCfg := range agents {
		agentCfg.Model = cfg.ModelFor(phaseRoleName(ph))
		agents[ph] = agentCfg
	}

	exec := &phase.Executor{
		Agents:  agents,
		Invoker: inv,
		Tools:   tools.New(cfg.ProjectRoot, time.Duration(cfg.BashTimeout)*time.Second),
		Repo:    repo,
		Notes:   notes,
	}

	return &orchestrator.Orchestrator{Phases: exec, MaxRetries: cfg.MaxRetries}, repo, notes, nil
}

func phaseRoleName(ph model.Phase) string {
	switch ph {
	case model.PhasePlan:
		return "plan"
	case model.PhaseRed:
		return "red"
	case model.PhaseGreen:
		return "green"
	case model.PhaseRefactor:
		return "refactor"
	default:
		return ""
	}
}

func runCmd() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Start a new workflow for a feature request",
		ArgsUsage: "<feature request>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			request := cmd.Args().First()
			if request == "" {
				return configErr(fmt.Errorf("feature request argument is required"))
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if err := precheckTestCommand(ctx, cfg); err != nil {
				return err
			}

			orc, _, _, err := buildOrchestrator(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer stop()

			pending, err := readPendingTests(cfg.ProjectRoot)
			if err != nil {
				return ioErr(err)
			}

			return executeWorkflow(ctx, orc, request, model.NewInitial(pending))
		},
	}
}

func resumeCmd() *cli.Command {
	return &cli.Command{
		Name:  "resume",
		Usage: "Continue from the last recorded handoff note",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			orc, _, notes, err := buildOrchestrator(cfg)
			if err != nil {
				return err
			}

			_, st, ok, err := notes.Latest(ctx)
			if err != nil {
				return ioErr(err)
			}
			if !ok {
				return runErr(fmt.Errorf("no prior handoff note found; use 'tddorc run' to start a new workflow"))
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer stop()

			return executeWorkflow(ctx, orc, "", st)
		},
	}
}

func executeWorkflow(ctx context.Context, orc *orchestrator.Orchestrator, featureRequest string, initial model.HandoffState) error {
	result, err := orc.RunWorkflow(ctx, featureRequest, initial)
	if err != nil {
		return ioErr(err)
	}
	if !result.Success {
		msg := "workflow did not complete"
		if result.Error != nil {
			msg = *result.Error
		}
		ux.Aborted(msg)
		return runErr(fmt.Errorf("%s", msg))
	}
	ux.Success(result.TotalTests)
	return nil
}

func readPendingTests(projectRoot string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(projectRoot, "test-list.md"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var pending []string
	for _, line := range splitLines(string(data)) {
		if desc, ok := uncheckedEntry(line); ok {
			pending = append(pending, desc)
		}
	}
	return pending, nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func uncheckedEntry(line string) (string, bool) {
	const prefix = "- [ ] "
	trimmed := line
	for len(trimmed) > 0 && (trimmed[0] == ' ' || trimmed[0] == '\t') {
		trimmed = trimmed[1:]
	}
	if len(trimmed) <= len(prefix) || trimmed[:len(prefix)] != prefix {
		return "", false
	}
	return trimmed[len(prefix):], true
}

// precheckTestCommand resolves the test command before PLAN starts; no
// detected framework and no test.command is a configuration error. The
// command is then run once, and a failing suite only logs a warning
// without aborting — spec.md §9 Open Question (c) explicitly leaves
// precondition checks unenforced.
func precheckTestCommand(ctx context.Context, cfg *config.Config) error {
	runner, err := testrunner.New(cfg.ProjectRoot, cfg.TestCommand)
	if err != nil {
		return configErr(err)
	}
	if _, passed, err := runner.Run(ctx); err != nil || !passed {
		fmt.Fprintf(os.Stderr, "warning: test suite is not passing before this run started (err=%v)\n", err)
	}
	return nil
}

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the current cycle, phase, and test-list summary",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			repo := &gitfacade.Repo{Root: cfg.ProjectRoot}
			notes := gitfacade.NewNotesStore(repo)

			_, st, ok, err := notes.Latest(ctx)
			if err != nil {
				return ioErr(err)
			}
			if !ok {
				fmt.Println("No workflow has been started yet.")
				return nil
			}
			ux.RenderStatus(cfg.ProjectRoot, st)
			return nil
		},
	}
}

func historyCmd() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recorded handoff notes, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "n", Usage: "Limit to the last N entries"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			repo := &gitfacade.Repo{Root: cfg.ProjectRoot}
			notes := gitfacade.NewNotesStore(repo)

			entries, err := notes.All(ctx)
			if err != nil {
				return ioErr(err)
			}
			if n := cmd.Int("n"); n > 0 && int(n) < len(entries) {
				entries = entries[:n]
			}
			ux.RenderHistory(entries)
			return nil
		},
	}
}

func rollbackCmd() *cli.Command {
	return &cli.Command{
		Name:      "rollback",
		Usage:     "Hard reset the project to a prior commit",
		ArgsUsage: "<commit>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Usage: "Required to actually modify the working tree"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			commit := cmd.Args().First()
			if commit == "" {
				return configErr(fmt.Errorf("commit argument is required"))
			}
			if !cmd.Bool("force") {
				return runErr(fmt.Errorf("rollback requires --force to confirm a destructive reset"))
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			repo := &gitfacade.Repo{Root: cfg.ProjectRoot}

			backupTag, err := repo.BackupTag(ctx)
			if err != nil {
				return ioErr(err)
			}
			fmt.Printf("backed up current HEAD as tag %s\n", backupTag)

			if err := repo.Reset(ctx, commit); err != nil {
				return ioErr(err)
			}
			fmt.Printf("rolled back to %s\n", commit)
			return nil
		},
	}
}

func doctorCmd() *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Diagnose the last failed phase using AI",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			orc, repo, notes, err := buildOrchestrator(cfg)
			if err != nil {
				return err
			}
			return doctor.Run(ctx, cfg, repo, notes, orc.Phases.Invoker)
		},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Scaffold test-list.md and tdd.properties for a new project",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.String("project")
			if dir == "" {
				d, err := os.Getwd()
				if err != nil {
					return ioErr(err)
				}
				dir = d
			}

			var inv *invoker.Invoker
			if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
				i, err := invoker.New(apiKey)
				if err != nil {
					return configErr(err)
				}
				inv = i
			}

			if err := scaffold.Init(ctx, dir, inv); err != nil {
				return runErr(err)
			}
			return nil
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-12s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'tddorc docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return configErr(err)
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}
