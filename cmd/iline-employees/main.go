package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"iline-employees/internal/config"
	"iline-employees/internal/db"
	"iline-employees/internal/httpapi"
	"iline-employees/internal/menu"
	"iline-employees/internal/seed"
	"iline-employees/internal/service"
)

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
}

func main() {
	root, err := newRootCmd()
	if err == nil {
		err = root.Execute()
	}
	if err != nil {
		_, _ = color.New(color.FgRed).Fprintln(os.Stderr, "✗ "+err.Error())
		os.Exit(1)
	}
}

func newRootCmd() (*cobra.Command, error) {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "iline-employees",
		Short: "Seed and browse a synthetic employee hierarchy",
		Long: `Seeds the employees table with a generated CEO/Manager/Team Lead/Developer
hierarchy and then opens an interactive menu to page through and add records.

Seeding drops and recreates the employees table.

  Environment variables:
    ILINE_DBNAME=test_database
    ILINE_USER=postgres
    ILINE_PASSWORD=
    ILINE_HOST=localhost
    ILINE_EMPLOYEE_COUNT=50000
    ILINE_PAGE_SIZE=20`,
		Example: `  iline-employees
  iline-employees seed -n 1000 --seed 42
  iline-employees browse --page-size 50
  iline-employees serve --http-port 8081`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.seed(cmd.Context()); err != nil {
				return err
			}
			return a.browse(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is configs/iline-employees.yaml or $HOME/iline-employees.yaml)")
	if err := config.BindFlags(root.PersistentFlags(), a.v); err != nil {
		return nil, err
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "seed",
			Short: "Drop, recreate and fill the employees table",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.seed(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "browse",
			Short: "Open the interactive menu without seeding",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.browse(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the employee list over HTTP",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.serve(cmd.Context())
			},
		},
	)

	return root, nil
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := config.InitViper(a.v, a.cfgFile); err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	a.cfg = cfg

	zapConfig := zap.NewProductionConfig()
	if cfg.Verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	a.logger, err = zapConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) seed(ctx context.Context) error {
	database, err := db.Connect(a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer db.Close(database)

	opts := seed.Options{
		BatchSize: a.cfg.BatchSize,
		Seed:      a.cfg.Seed,
	}
	if a.cfg.Progress {
		opts.Progress = os.Stderr
	}

	fmt.Println("Creating the employees table")
	result, err := seed.New(database, a.logger, opts).Run(ctx, a.cfg.EmployeeCount)
	if err != nil {
		return err
	}

	_, _ = color.New(color.FgGreen).Printf("✓ %d employees added in %v\n", result.Inserted, result.Elapsed.Round(time.Millisecond))
	return nil
}

func (a *app) browse(ctx context.Context) error {
	database, err := db.Connect(a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer db.Close(database)

	prompter := menu.NewTerminalPrompter()
	defer prompter.Close()

	directory := service.NewEmployeeService(database)
	return menu.New(directory, prompter, os.Stdout, a.cfg.PageSize, a.logger).Run(ctx)
}

func (a *app) serve(ctx context.Context) error {
	database, err := db.Connect(a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer db.Close(database)

	handler := httpapi.NewHandler(service.NewEmployeeService(database), a.logger, a.cfg.PageSize)
	server := &http.Server{
		Addr:              ":" + a.cfg.HTTPPort,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.logger.Info("shutting down server")
	return server.Shutdown(shutdownCtx)
}
