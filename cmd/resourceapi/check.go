package main

import (
	"fmt"
	"regexp"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/RamiObaid92/AIProjectTest/internal/config"
	"github.com/RamiObaid92/AIProjectTest/internal/descriptors"
	"github.com/RamiObaid92/AIProjectTest/internal/schema"
)

var checkConfigPath string

func init() {
	checkCmd.Flags().StringVar(&checkConfigPath, "config", "", "Path to the configuration file")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the type descriptor file",
	Long: `Load the configured descriptor file and report problems without
starting the server. Malformed field patterns are warnings: the server
skips them at validation time rather than rejecting payloads.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFrom(checkConfigPath)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen)
		yellow := color.New(color.FgYellow)

		loaded, err := descriptors.Load(cfg.Descriptors.Path)
		if err != nil {
			return fmt.Errorf("descriptor file %s is invalid: %w", cfg.Descriptors.Path, err)
		}
		if _, err := schema.NewLookup(loaded); err != nil {
			return fmt.Errorf("descriptor file %s is invalid: %w", cfg.Descriptors.Path, err)
		}

		warnings := 0
		for _, d := range loaded {
			fmt.Printf("%s (v%d): %d field(s)\n", d.TypeKey, d.SchemaVersion, len(d.Fields))
			for _, f := range d.Fields {
				if f.Pattern == "" {
					continue
				}
				if _, err := regexp.Compile(f.Pattern); err != nil {
					yellow.Printf("  warning: %s.%s has a malformed pattern, it will be skipped: %v\n",
						d.TypeKey, f.Name, err)
					warnings++
				}
			}
		}

		if warnings > 0 {
			yellow.Printf("\n%d type(s) loaded with %d warning(s)\n", len(loaded), warnings)
		} else {
			green.Printf("\n%d type(s) loaded, no problems found\n", len(loaded))
		}
		return nil
	},
}
