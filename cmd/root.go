package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"webdarkmode/darken"
	"webdarkmode/darken/style"
	"webdarkmode/logging"
)

var (
	outputFile string
	filterName string
	debug      bool
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	statStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

var rootCmd = &cobra.Command{
	Use:   "webdarkmode <input.html>",
	Short: "Convert saved web pages to dark mode",
	Long: `A CLI tool to convert saved web pages to dark mode.

Scans the page's images and inverts those that look like bright-background
documents (screenshots, terminal output, scanned text). Two transforms:
  - pixel:  decodes, inverts and re-encodes the image in place
  - style:  CSS inversion filter, used when the image's pixels cannot be read`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		// Validate input file exists
		if _, err := os.Stat(inputFile); os.IsNotExist(err) {
			return fmt.Errorf("input file does not exist: %s", inputFile)
		}

		// Set default output file if not specified
		if outputFile == "" {
			ext := filepath.Ext(inputFile)
			if ext == "" {
				ext = ".html"
			}
			outputFile = strings.TrimSuffix(inputFile, filepath.Ext(inputFile)) + "_dark" + ext
		}

		filter, err := style.GetFilter(filterName)
		if err != nil {
			return fmt.Errorf("%w (available: %s)", err, strings.Join(style.ListFilters(), ", "))
		}

		logger := logging.New(logging.Config{Debug: debug})
		defer logger.Sync()

		fmt.Printf("Converting %s to dark mode...\n", inputFile)
		report, err := darken.Process(cmd.Context(), darken.Options{
			InputFile:  inputFile,
			OutputFile: outputFile,
			Filter:     filter,
			Logger:     logger,
		})
		if err != nil {
			return fmt.Errorf("conversion failed: %w", err)
		}

		printSummary(report)
		return nil
	},
}

func printSummary(report *darken.Report) {
	fmt.Println(successStyle.Render("Successfully created: " + outputFile))
	fmt.Println(statStyle.Render(fmt.Sprintf("%d inverted, %d filtered, %d left unchanged",
		report.Inverted, report.Filtered, report.Skipped+report.Rejected)))
	if n := report.Unloaded + report.Aborted; n > 0 {
		fmt.Println(faintStyle.Render(fmt.Sprintf("%d images could not be processed", n)))
	}
}

func init() {
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output HTML file (default: <input>_dark.html)")
	rootCmd.Flags().StringVarP(&filterName, "filter", "f", "standard", "Fallback filter: "+strings.Join(style.ListFilters(), ", "))
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Log per-image decisions")
}

// SetVersionInfo wires build-time version details into the root command.
func SetVersionInfo(version, buildTime, gitCommit string) {
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", version, buildTime, gitCommit)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
