package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	repo "resume-parser/internal/adapter/repository"
	"resume-parser/internal/config"
	"resume-parser/internal/infrastructure/migration"
	"resume-parser/internal/logging"
	"resume-parser/internal/reader"
	"resume-parser/internal/usecase"
	"resume-parser/pkg/ai"
	infra "resume-parser/pkg/infrastructure"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "resume-parser",
	Short: "Parse resume files into schema-validated JSON documents",
	Long: `resume-parser reads resume files (.pdf, .docx), has a language model
restate them as JSON following the resume schema, validates the result and
stores it.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to the yaml config file")
}

// app bundles everything the serve and parse commands wire up.
type app struct {
	cfg       config.Config
	log       zerolog.Logger
	repo      *repo.ResumesRepo
	processor *usecase.Processor
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	pool, err := infra.NewPool(ctx, cfg.Database.DSN)
	if err != nil {
		log.Warn().Err(err).Msg("database not available, storage disabled")
		pool = nil
	}
	if pool != nil {
		if err := migration.RunMigrations(ctx, pool, log); err != nil {
			return nil, err
		}
	}

	resumesRepo := repo.NewResumesRepo(pool)

	client := ai.New(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Timeout)
	source := reader.New(cfg.Parser.InputDirs, log)
	processor := usecase.NewProcessor(source, client, resumesRepo, cfg.Parser.OutputDir, log)

	return &app{cfg: cfg, log: log, repo: resumesRepo, processor: processor}, nil
}
