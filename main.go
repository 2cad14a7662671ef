// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/danielhkuo/regdesk/cliparse"
	"github.com/danielhkuo/regdesk/db"
	"github.com/danielhkuo/regdesk/export"
	"github.com/danielhkuo/regdesk/router"
)

const shutdownTimeout = 10 * time.Second

var (
	verbose   bool
	envFile   string
	serveCfg  cliparse.Config
	exportCfg cliparse.Config
	exportDir string
)

var rootCmd = &cobra.Command{
	Use:   "regdesk",
	Short: "Hackathon team registration service",
	Long: `regdesk runs the team registration wizard API and the admin dashboard.

Teams fill a three-step draft (team details, members, final details) that is
validated step by step and stored once submitted. Admins list submissions,
view aggregate statistics and download an xlsx export.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		zap.ReplaceGlobals(logger)

		return cliparse.LoadDotEnv(envFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the registration API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliparse.Resolve(cmd.Flags(), serveCfg)
		if err != nil {
			return err
		}
		return runServer(cfg)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all registrations to an xlsx workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliparse.Resolve(cmd.Flags(), exportCfg)
		if err != nil {
			return err
		}
		return runExport(cmd.Context(), cfg, exportDir)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before resolving config")

	cliparse.RegisterFlags(serveCmd.Flags(), &serveCfg)

	cliparse.RegisterFlags(exportCmd.Flags(), &exportCfg)
	exportCmd.Flags().StringVarP(&exportDir, "output", "o", ".", "Directory to write the workbook to")

	rootCmd.AddCommand(serveCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openStore(cfg cliparse.Config) (*sql.DB, error) {
	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.CreateSchema(conn, cfg.StrictTeamNames); err != nil {
		conn.Close()
		return nil, fmt.Errorf("schema creation failed: %w", err)
	}
	zap.L().Info("database schema ready",
		zap.String("type", cfg.DatabaseType),
		zap.Bool("strict_team_names", cfg.StrictTeamNames),
	)
	return conn, nil
}

func runServer(cfg cliparse.Config) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	server := &http.Server{
		Handler:           router.NewRouter(store, cfg),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		zap.L().Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			zap.L().Error("graceful shutdown failed", zap.Error(err))
			server.Close()
		}
	}()

	zap.L().Info("listening", zap.Int("port", cfg.Port), zap.String("event", cfg.EventName))
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server closed: %w", err)
	}
	zap.L().Info("server closed")
	return nil
}

func runExport(ctx context.Context, cfg cliparse.Config, dir string) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	regs, err := db.NewRegistrations(store).ListOrderedBy(ctx, db.FieldSubmittedAt, db.Desc)
	if err != nil {
		return fmt.Errorf("failed to load registrations: %w", err)
	}

	path := filepath.Join(dir, export.Filename(cfg.EventName, time.Now()))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.Write(f, regs, time.Local); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	zap.L().Info("export written", zap.String("path", path), zap.Int("teams", len(regs)))
	return nil
}
