package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kobesoft-inc/jsic-data/pkg/config"
	"github.com/kobesoft-inc/jsic-data/pkg/extract"
	"github.com/kobesoft-inc/jsic-data/pkg/jsic"
	"github.com/kobesoft-inc/jsic-data/pkg/pdfio"
	"github.com/kobesoft-inc/jsic-data/pkg/validate"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "jsic",
		Short: "Japan Standard Industrial Classification extractor",
		Long: `jsic extracts the Japan Standard Industrial Classification from the
official PDF published by the Ministry of Internal Affairs and
Communications and emits it as a hierarchical JSON dataset.

It produces:
  - The four-level category tree (major / middle / minor / detail)
  - Descriptions and included/excluded example lists per category
  - English names merged in from the classification index
  - A validation report against the published category counts`,
		Version: version,
	}

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract the classification tree from the source PDF",
		Long: `Extract downloads the source PDF (unless a local file or cached copy
exists), parses the classification index and the detail definitions,
and writes the tree as JSON.

Example:
  jsic extract
  jsic extract --source tmp/jsic.pdf --output jsic.json --format simple --stats`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			output, _ := cmd.Flags().GetString("output")
			formatName, _ := cmd.Flags().GetString("format")
			configPath, _ := cmd.Flags().GetString("config")
			showStats, _ := cmd.Flags().GetBool("stats")
			strict, _ := cmd.Flags().GetBool("strict")

			format, err := jsic.ParseFormat(formatName)
			if err != nil {
				return err
			}

			profile := config.Default()
			if configPath != "" {
				profile, err = config.Load(configPath)
				if err != nil {
					return err
				}
			}

			startTime := time.Now()

			// Step 1: Obtain the PDF
			path := source
			if path == "" {
				fmt.Printf("  1. Fetching source PDF... ")
				path, err = pdfio.Download(profile.SourceURL, profile.CachePath)
				if err != nil {
					return fmt.Errorf("failed to fetch source: %w", err)
				}
				fmt.Printf("done (%s)\n", path)
			} else {
				if _, err := os.Stat(path); err != nil {
					return fmt.Errorf("source file not found: %s", path)
				}
				fmt.Printf("  1. Using local PDF: %s\n", path)
			}

			// Step 2: Extract text
			fmt.Print("  2. Extracting PDF text... ")
			reader, err := pdfio.Open(path, profile.Corrections)
			if err != nil {
				return fmt.Errorf("failed to read PDF: %w", err)
			}
			fmt.Printf("done (%d pages)\n", reader.TotalPages())

			// Step 3: Parse the classification index
			fmt.Print("  3. Parsing classification index... ")
			indexLines, err := reader.ReadPages(profile.IndexPages.Start, profile.IndexPages.End)
			if err != nil {
				return err
			}
			indexParser := extract.NewIndexParser()
			entries := indexParser.Parse(indexLines)
			fmt.Printf("done (%d entries)\n", len(entries))

			// Step 4: Build the tree from the detail definitions
			fmt.Print("  4. Building category tree... ")
			detailLines, err := reader.ReadPages(profile.DetailPages.Start, profile.DetailPages.End)
			if err != nil {
				return err
			}
			builder := extract.NewBuilder()
			builder.FeedAll(detailLines)
			tree, anomalies, err := builder.Finish()
			if err != nil {
				return fmt.Errorf("failed to build tree: %w", err)
			}
			counts := tree.CountByLevel()
			fmt.Printf("done (%d/%d/%d/%d categories)\n",
				counts[jsic.LevelMajor], counts[jsic.LevelMiddle],
				counts[jsic.LevelMinor], counts[jsic.LevelDetail])

			// Step 5: Merge English names from the index
			fmt.Print("  5. Merging index names... ")
			warnings := extract.Merge(tree, entries)
			fmt.Printf("done (%d warnings)\n", len(warnings))

			// Step 6: Validate
			fmt.Print("  6. Validating tree... ")
			result := validate.Validate(tree, profile.ValidationProfile())
			fmt.Printf("%s\n", result.Status)

			// Step 7: Write output
			fmt.Printf("  7. Writing %s view... ", format)
			out := jsic.Project(tree, format)
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode output: %w", err)
			}
			if err := os.WriteFile(output, append(data, '\n'), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Printf("done (%s)\n", output)

			fmt.Printf("\nCompleted in %s\n", time.Since(startTime).Round(time.Millisecond))

			if showStats {
				printStats(tree, anomalies, warnings)
			}
			printReport(result)

			if strict && result.Status != validate.StatusPass {
				return fmt.Errorf("validation did not pass: %s", result.Status)
			}
			if result.Status == validate.StatusFail {
				fmt.Fprintln(os.Stderr, "warning: tree failed validation; output written anyway")
			}
			return nil
		},
	}

	cmd.Flags().String("source", "", "Local PDF file (skips download)")
	cmd.Flags().String("output", "jsic.json", "Output JSON file")
	cmd.Flags().String("format", "full", "Output view: full, simple, or en")
	cmd.Flags().String("config", "", "YAML extraction profile")
	cmd.Flags().Bool("stats", false, "Print extraction statistics")
	cmd.Flags().Bool("strict", false, "Exit non-zero unless validation passes")
	return cmd
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a previously extracted JSON dataset",
		Long: `Validate re-checks an extracted dataset against the expected category
counts, code formats, and ordering rules.

Example:
  jsic validate --input jsic.json
  jsic validate --input jsic.json --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			configPath, _ := cmd.Flags().GetString("config")
			strict, _ := cmd.Flags().GetBool("strict")

			profile := config.Default()
			if configPath != "" {
				var err error
				profile, err = config.Load(configPath)
				if err != nil {
					return err
				}
			}

			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", input, err)
			}
			tree, err := jsic.ParseOutput(data)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", input, err)
			}

			result := validate.Validate(tree, profile.ValidationProfile())
			printReport(result)

			if result.Status == validate.StatusFail || (strict && result.Status != validate.StatusPass) {
				return fmt.Errorf("validation %s", strings.ToLower(string(result.Status)))
			}
			return nil
		},
	}

	cmd.Flags().String("input", "jsic.json", "Extracted JSON dataset")
	cmd.Flags().String("config", "", "YAML extraction profile")
	cmd.Flags().Bool("strict", false, "Exit non-zero unless validation passes")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("jsic version %s\n", version)
		},
	}
}

func printStats(tree *jsic.Tree, anomalies []extract.Anomaly, warnings []extract.MergeWarning) {
	counts := tree.CountByLevel()
	fmt.Println("\nExtraction statistics:")
	fmt.Printf("  Major categories:  %d\n", counts[jsic.LevelMajor])
	fmt.Printf("  Middle categories: %d\n", counts[jsic.LevelMiddle])
	fmt.Printf("  Minor categories:  %d\n", counts[jsic.LevelMinor])
	fmt.Printf("  Detail categories: %d\n", counts[jsic.LevelDetail])
	if len(anomalies) > 0 {
		fmt.Printf("  Parse anomalies:   %d\n", len(anomalies))
		for _, a := range anomalies {
			fmt.Printf("    - %s\n", a)
		}
	}
	if len(warnings) > 0 {
		fmt.Printf("  Merge warnings:    %d\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    - %s\n", w)
		}
	}
}

func printReport(result *validate.Result) {
	fmt.Printf("\nValidation: %s\n", result.Status)
	for _, issue := range result.Issues {
		fmt.Printf("  [%s] %s: %s\n", issue.Severity, issue.Category, issue.Message)
	}
}
