// cmd/latticegen/main.go
//
// Entry point for the latticegen CLI.
//
// Flow:
// 1. Resolve the project directory (cwd or --project)
// 2. Load .latticegen/config.yaml and open logs, history and metrics
// 3. Run the selected subcommand against the CIME scripts

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kingrea/namelist-lattice/internal/cime"
	"github.com/kingrea/namelist-lattice/internal/config"
	"github.com/kingrea/namelist-lattice/internal/history"
	"github.com/kingrea/namelist-lattice/internal/lattice"
	"github.com/kingrea/namelist-lattice/internal/logbook"
	"github.com/kingrea/namelist-lattice/internal/logging"
	"github.com/kingrea/namelist-lattice/internal/metrics"
	"github.com/kingrea/namelist-lattice/internal/orchestrator"
	"github.com/kingrea/namelist-lattice/internal/tui"
)

var projectDir string

var rootCmd = &cobra.Command{
	Use:   "latticegen",
	Short: "Generate CIME case clones over a parameter lattice",
	Long: `latticegen expands a lattice definition into one CIME case per point,
writes each point's parameters into user_nl_{component} or the case XML store,
and submits or resubmits the resulting cases.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectDir, "project", "", "project directory holding .latticegen (defaults to cwd)")
	rootCmd.AddCommand(initCmd, planCmd, cloneCmd, submitCmd, resubmitCmd, statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.Error(err.Error()))
		os.Exit(1)
	}
}

// environment bundles everything a command needs for one invocation.
type environment struct {
	cfg     *config.Config
	logger  *logging.Logger
	journal *logbook.Logbook
	metrics *metrics.Metrics
	store   history.Store
	client  *cime.Client
}

func resolveProject() (string, error) {
	dir := projectDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory: %w", err)
		}
		dir = cwd
	}
	return filepath.Abs(dir)
}

func openEnvironment() (*environment, error) {
	dir, err := resolveProject()
	if err != nil {
		return nil, err
	}
	if err := config.InitProjectDir(dir); err != nil {
		return nil, fmt.Errorf("init %s: %w", config.ProjectDirName, err)
	}
	cfg, err := config.NewConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.LogsDir())
	if err != nil {
		return nil, fmt.Errorf("open command log: %w", err)
	}
	journal, err := logbook.Open(cfg.LogsDir())
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("open journal: %w", err)
	}
	store, err := history.Open(cfg.HistoryBackend(), cfg.HistoryPath())
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("open history: %w", err)
	}
	client := cime.New(cfg.CIMEScriptsDir(),
		cime.WithKeepExe(cfg.KeepExe()),
		cime.WithOutput(logger),
	)
	return &environment{
		cfg:     cfg,
		logger:  logger,
		journal: journal,
		metrics: metrics.New(),
		store:   store,
		client:  client,
	}, nil
}

// newOrchestrator wires the exec-backed client and the terminal prompt.
func (e *environment) newOrchestrator() (*orchestrator.Orchestrator, error) {
	return orchestrator.New(e.client, e.client, e.client,
		orchestrator.WithConfirmer(tui.NewPrompt(os.Stdin, os.Stdout)),
		orchestrator.WithComponent(e.cfg.Component()),
		orchestrator.WithLogbook(e.journal),
		orchestrator.WithMetrics(e.metrics),
		orchestrator.WithHistory(e.store),
	)
}

// close exports metrics and releases the stores.
func (e *environment) close() error {
	var errs []error
	if path := e.cfg.MetricsTextfile(); path != "" {
		if err := e.metrics.WriteTextfile(path); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	if err := e.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close history: %w", err))
	}
	if err := e.logger.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close command log: %w", err))
	}
	return errors.Join(errs...)
}

// loadRegistry builds the registry of a lattice definition, printing
// registration warnings as they are raised. A path of "-" reads in.
func loadRegistry(path string, in io.Reader) (*lattice.Registry, error) {
	var (
		def lattice.Definition
		err error
	)
	switch path {
	case "":
		return nil, errors.New("a lattice definition is required (-f)")
	case "-":
		def, err = lattice.LoadDefinitionReader(in)
	default:
		def, err = lattice.LoadDefinitionFile(path)
	}
	if err != nil {
		return nil, err
	}
	return def.Registry(lattice.WithWarningHandler(func(w lattice.Warning) {
		fmt.Fprintln(os.Stderr, tui.Warning(w.String()))
	}))
}

// withEnvironment opens the environment, runs fn and closes it again.
func withEnvironment(fn func(env *environment) error) error {
	env, err := openEnvironment()
	if err != nil {
		return err
	}
	runErr := fn(env)
	closeErr := env.close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}
