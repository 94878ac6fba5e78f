package main

import (
	"context"
	"fmt"
	"os"

	"path/filepath"

	"github.com/spf13/cobra"

	"resume-parser/internal/domain"
	"resume-parser/internal/jsonio"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse all resume files from the configured directories",
	Long: `Runs the parsing pipeline once: reads every .pdf and .docx file from
the configured input directories, parses each into a schema-validated JSON
document in the output directory and stores the valid ones.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runParse(); err != nil {
			fmt.Printf("parse failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse() error {
	ctx := context.Background()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	job := domain.NewParseJob()
	if err := a.processor.Run(ctx, job); err != nil {
		return err
	}

	for _, f := range job.Files {
		if f.Error != "" {
			fmt.Printf("FAIL %s: %s\n", f.Path, f.Error)
			continue
		}
		fmt.Printf("OK   %s -> %s\n", f.Path, f.OutputPath)
	}

	reportPath := filepath.Join(a.cfg.Parser.OutputDir, "job-"+job.ID.String()+".json")
	if err := jsonio.Save(reportPath, job); err != nil {
		a.log.Warn().Err(err).Msg("failed to write job report")
	}

	if job.Status == domain.JobStatusFailed {
		return fmt.Errorf("no resume could be parsed")
	}
	fmt.Printf("parsed %d file(s), job %s\n", len(job.Files), job.ID)
	return nil
}
