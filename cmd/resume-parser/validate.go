package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-parser/internal/jsonio"
	"resume-parser/internal/model"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check JSON documents against the resume schema",
	Long: `Validates each given JSON file against the resume schema and prints
the violations. Exits non-zero when any document fails.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !runValidate(args) {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(paths []string) bool {
	allValid := true

	for _, path := range paths {
		doc, err := jsonio.Load(path)
		if err != nil {
			fmt.Printf("FAIL %s: %v\n", path, err)
			allValid = false
			continue
		}

		err = model.ValidateMap(doc)
		if err == nil {
			fmt.Printf("OK   %s\n", path)
			continue
		}
		allValid = false

		var verr *model.ValidationError
		if errors.As(err, &verr) {
			fmt.Printf("FAIL %s:\n", path)
			for _, v := range verr.Violations {
				fmt.Printf("  %s: %s (%s)\n", v.Path, v.Message, v.Kind)
			}
			continue
		}
		fmt.Printf("FAIL %s: %v\n", path, err)
	}

	return allValid
}
