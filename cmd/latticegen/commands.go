package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kingrea/namelist-lattice/internal/config"
	"github.com/kingrea/namelist-lattice/internal/history"
	"github.com/kingrea/namelist-lattice/internal/lattice"
	"github.com/kingrea/namelist-lattice/internal/naming"
	"github.com/kingrea/namelist-lattice/internal/orchestrator"
	"github.com/kingrea/namelist-lattice/internal/tui"
)

// journalTail is how many journal lines the status browser shows.
const journalTail = 12

// namingFlags locate the clones of a lattice.
type namingFlags struct {
	file      string
	root      string
	cloneDir  string
	outputDir string
	prefix    string
	suffixes  []string
}

func (f *namingFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.file, "file", "f", "", "lattice definition (YAML); - reads stdin")
	flags.StringVar(&f.root, "root", "", "root case every clone copies")
	flags.StringVar(&f.cloneDir, "clone-dir", "", "directory holding the clones (defaults to the root case's parent)")
	flags.StringVar(&f.outputDir, "output-dir", "", "top output directory passed to create_clone")
	flags.StringVar(&f.prefix, "prefix", "", "case name prefix (defaults to the root case's name)")
	flags.StringArrayVar(&f.suffixes, "suffix", nil, "case suffix; give once for all points or once per point")
}

func (f *namingFlags) options() orchestrator.CloneOptions {
	return orchestrator.CloneOptions{
		RootCase:  f.root,
		CloneDir:  f.cloneDir,
		OutputDir: f.outputDir,
		Prefix:    f.prefix,
		Suffixes:  f.suffixes,
	}
}

var (
	planFlags namingFlags

	cloneFlags        namingFlags
	cloneOverwrite    bool
	cloneClean        bool
	cloneResubmits    int
	cloneReadExisting bool

	submitFlags namingFlags
	submitDry   bool

	initScriptsDir string

	statusInteractive bool
	statusAll         bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .latticegen with a default config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveProject()
		if err != nil {
			return err
		}
		if err := config.InitProjectDir(dir); err != nil {
			return err
		}
		cfg, err := config.NewConfig(dir)
		if err != nil {
			return err
		}
		if initScriptsDir != "" {
			scripts, err := filepath.Abs(initScriptsDir)
			if err != nil {
				return err
			}
			if err := cfg.SetCIMEScriptsDir(scripts); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.Banner("initialized "+cfg.ProjectDir))
		if cfg.CIMEScriptsDir() == "" {
			fmt.Fprintln(cmd.OutOrStdout(), tui.Warning(fmt.Sprintf("cime.scripts_dir is empty; set it in %s or export %s",
				cfg.ProjectConfigPath(), config.CIMEDirEnv)))
		}
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the lattice points and the cases they would become",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(planFlags.file, cmd.InOrStdin())
		if err != nil {
			return err
		}
		headers := make([]string, 0, len(reg.Dimensions()))
		for _, dim := range reg.Dimensions() {
			headers = append(headers, dim.Label())
		}
		rows, err := planRows(reg, planFlags)
		if err != nil {
			return err
		}
		title := fmt.Sprintf("LATTICE · %s · %d dimensions", modeLabel(reg.Mode()), len(headers))
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderPlan(title, headers, rows))
		return nil
	},
}

func planRows(reg *lattice.Registry, flags namingFlags) ([]tui.PlanRow, error) {
	if flags.root != "" {
		targets, _, err := orchestrator.Resolve(reg, flags.options())
		if err != nil {
			return nil, err
		}
		rows := make([]tui.PlanRow, len(targets))
		for i, t := range targets {
			rows[i] = tui.PlanRow{Index: t.Index, Values: t.Values, Suffix: t.Suffix, Case: t.CasePath}
		}
		return rows, nil
	}
	points, err := reg.Lattice()
	if err != nil {
		return nil, err
	}
	suffixes, err := naming.New(reg).Suffixes(points, flags.suffixes)
	if err != nil {
		return nil, err
	}
	rows := make([]tui.PlanRow, len(points))
	for i, point := range points {
		values := make([]string, len(point))
		for j, tuple := range point {
			values[j] = tuple.Text()
		}
		rows[i] = tui.PlanRow{Index: i, Values: values, Suffix: suffixes[i]}
	}
	return rows, nil
}

func modeLabel(mode lattice.Mode) string {
	if mode == lattice.ModeZip {
		return "zip"
	}
	return "fill"
}

var cloneCmd = &cobra.Command{
	Use:   "clone",
	Short: "Create and configure one case per lattice point",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(cloneFlags.file, cmd.InOrStdin())
		if err != nil {
			return err
		}
		return withEnvironment(func(env *environment) error {
			orch, err := env.newOrchestrator()
			if err != nil {
				return err
			}
			opts := cloneFlags.options()
			opts.Overwrite = cloneOverwrite
			opts.Clean = cloneClean
			opts.ReadExisting = cloneReadExisting
			opts.Resubmits = env.cfg.DefaultResubmits()
			if cmd.Flags().Changed("resubmits") {
				opts.Resubmits = cloneResubmits
			}
			ctx, stop := signalContext()
			defer stop()
			run, err := orch.CreateClones(ctx, reg, opts)
			if len(run.Points) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), tui.RenderHistory(runManifest(env, run)))
			}
			if errors.Is(err, orchestrator.ErrCleanDeclined) {
				return errors.New("clean declined; nothing was removed")
			}
			return err
		})
	},
}

// runManifest prefers the persisted manifest so the table carries the run's
// metadata, falling back to the in-memory points.
func runManifest(env *environment, run orchestrator.Run) history.Manifest {
	if m, err := env.store.Load(); err == nil && m.RunID == run.RunID {
		return m
	}
	return history.Manifest{RunID: run.RunID, Points: run.Points}
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit every registered case",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSubmission(cmd, func(ctx context.Context, orch *orchestrator.Orchestrator) ([]orchestrator.Submission, error) {
			return orch.Submit(ctx, submitDry)
		})
	},
}

var resubmitCmd = &cobra.Command{
	Use:   "resubmit",
	Short: "Resubmit every registered case with RESUBMIT left",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSubmission(cmd, func(ctx context.Context, orch *orchestrator.Orchestrator) ([]orchestrator.Submission, error) {
			return orch.Resubmit(ctx, submitDry)
		})
	},
}

// runSubmission registers cases, from the lattice when -f is given and from
// the latest history manifest otherwise, then runs submit.
func runSubmission(cmd *cobra.Command, submit func(context.Context, *orchestrator.Orchestrator) ([]orchestrator.Submission, error)) error {
	return withEnvironment(func(env *environment) error {
		orch, err := env.newOrchestrator()
		if err != nil {
			return err
		}
		ctx, stop := signalContext()
		defer stop()
		if submitFlags.file != "" {
			reg, err := loadRegistry(submitFlags.file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			opts := submitFlags.options()
			opts.ReadExisting = true
			if _, err := orch.CreateClones(ctx, reg, opts); err != nil {
				return err
			}
		} else {
			manifest, err := env.store.Load()
			if err != nil && !errors.Is(err, history.ErrNotFound) {
				return err
			}
			orch.Register(manifest.Cases()...)
		}
		subs, err := submit(ctx, orch)
		out := cmd.OutOrStdout()
		for _, sub := range subs {
			switch {
			case sub.Skipped:
				fmt.Fprintln(out, tui.Muted(fmt.Sprintf("skip %s (RESUBMIT=0)", sub.Case)))
			case sub.Dry:
				fmt.Fprintln(out, "DRY: "+sub.Command)
			default:
				fmt.Fprintln(out, "submitted "+sub.Case)
			}
		}
		return err
	})
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the latest clone run",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if statusAll && statusInteractive {
			return errors.New("--all and --interactive cannot be combined")
		}
		return withEnvironment(func(env *environment) error {
			if statusAll {
				return printRuns(cmd, env)
			}
			manifest, err := env.store.Load()
			if errors.Is(err, history.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), tui.Muted("no clone runs recorded yet"))
				return nil
			}
			if err != nil {
				return err
			}
			if !statusInteractive {
				fmt.Fprintln(cmd.OutOrStdout(), tui.RenderHistory(manifest))
				return nil
			}
			lines, _ := env.journal.Tail(journalTail)
			p := tea.NewProgram(tui.NewApp(manifest, lines), tea.WithAltScreen())
			_, err = p.Run()
			return err
		})
	},
}

// printRuns renders every run the history backend keeps, newest first.
func printRuns(cmd *cobra.Command, env *environment) error {
	runs, err := history.Runs(env.store)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, tui.Muted("no clone runs recorded yet"))
		return nil
	}
	if env.cfg.HistoryBackend() != history.BackendSQLite {
		fmt.Fprintln(out, tui.Muted("the file history backend keeps the latest run only"))
	}
	for _, m := range runs {
		fmt.Fprintln(out, tui.RenderHistory(m))
	}
	return nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func init() {
	planFlags.register(planCmd)

	cloneFlags.register(cloneCmd)
	cloneCmd.Flags().BoolVar(&cloneOverwrite, "overwrite", false, "destroy existing case and output directories first")
	cloneCmd.Flags().BoolVar(&cloneClean, "clean", false, "remove the clone and output directories entirely (asks first)")
	cloneCmd.Flags().IntVar(&cloneResubmits, "resubmits", 0, "RESUBMIT for every new clone (defaults to config)")
	cloneCmd.Flags().BoolVar(&cloneReadExisting, "read-existing", false, "register existing clones without creating them")

	submitFlags.register(submitCmd)
	submitFlags.register(resubmitCmd)
	submitCmd.Flags().BoolVar(&submitDry, "dry", false, "print the submit commands only")
	resubmitCmd.Flags().BoolVar(&submitDry, "dry", false, "print the submit commands only")

	initCmd.Flags().StringVar(&initScriptsDir, "scripts-dir", "", "directory holding create_clone, saved as cime.scripts_dir")

	statusCmd.Flags().BoolVarP(&statusInteractive, "interactive", "i", false, "browse the run interactively")
	statusCmd.Flags().BoolVar(&statusAll, "all", false, "list every recorded run (sqlite backend keeps them all)")
}
