// Package commands implements CLI command handlers for pyimports.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/pyimports/internal/catalog"
	"github.com/Sumatoshi-tech/pyimports/internal/config"
	"github.com/Sumatoshi-tech/pyimports/internal/pathset"
	"github.com/Sumatoshi-tech/pyimports/internal/report"
	"github.com/Sumatoshi-tech/pyimports/internal/scan"
	"github.com/Sumatoshi-tech/pyimports/pkg/importmodel"
)

// ScanCommand holds configuration and dependencies for the scan command.
type ScanCommand struct {
	configFile        string
	format            string
	workers           int
	excludeCatalog    bool
	catalogFile       string
	chartFile         string
	validateNotebooks bool
	verbose           bool
	quiet             bool
	noColor           bool

	writer io.Writer
}

// NewScanCommand creates the scan cobra command.
func NewScanCommand() *cobra.Command {
	sc := &ScanCommand{}

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Scan Python files and notebooks for imported modules",
		Long: `Scan the given files and directories for Python import statements.

Directories are walked recursively; .py files and .ipynb notebooks are
scanned. Each imported module is classified as required (imported at top
level somewhere) or optional (only imported inside nested blocks), with
file:line:column evidence for optional modules.

Examples:
  pyimports scan .                       # Scan the current tree
  pyimports scan src/ notebooks/a.ipynb  # Mix files and directories
  pyimports scan -x .                    # Hide standard-library modules
  pyimports scan -f json . > report.json # Machine-readable output
  pyimports scan --chart out.html .      # Also write a bar chart`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc.writer = cmd.OutOrStdout()

			return sc.Run(cmd, args)
		},
	}

	cmd.Flags().StringVar(&sc.configFile, "config", "", "config file (default: .pyimports.yaml in CWD or $HOME)")
	cmd.Flags().StringVarP(&sc.format, "format", "f", config.DefaultFormat, "output format (text, json, yaml)")
	cmd.Flags().IntVarP(&sc.workers, "workers", "w", config.DefaultWorkers, "number of files scanned in parallel")
	cmd.Flags().BoolVarP(&sc.excludeCatalog, "exclude-catalog", "x", false, "exclude modules present in the catalog")
	cmd.Flags().StringVar(&sc.catalogFile, "catalog", "", "extra catalog file (YAML list of module names)")
	cmd.Flags().StringVar(&sc.chartFile, "chart", "", "also write an HTML bar chart to this file")
	cmd.Flags().BoolVar(&sc.validateNotebooks, "validate-notebooks", false, "validate notebook containers before extraction")
	cmd.Flags().BoolVarP(&sc.verbose, "verbose", "v", false, "verbose output")
	cmd.Flags().BoolVarP(&sc.quiet, "quiet", "q", false, "suppress diagnostics, print the report only")
	cmd.Flags().BoolVar(&sc.noColor, "no-color", false, "disable colored output")

	return cmd
}

// Run executes the scan pipeline end to end.
func (sc *ScanCommand) Run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(sc.configFile)
	if err != nil {
		return err
	}

	sc.applyConfig(cmd, cfg)
	sc.setupLogging()

	cat, err := sc.buildCatalog()
	if err != nil {
		return err
	}

	candidates, err := pathset.Collect(args)
	if err != nil {
		return err
	}

	scanner := scan.New(scan.Options{
		Workers:           sc.workers,
		ValidateNotebooks: sc.validateNotebooks,
	})

	idx, stats, err := scanner.Scan(cmd.Context(), candidates)
	if err != nil {
		return err
	}

	slog.Debug("scan complete",
		"files", len(candidates),
		"scanned", stats.Scanned,
		"skipped", stats.Skipped,
		"modules", idx.Len(),
	)

	classified := scan.Classify(idx, cat, sc.excludeCatalog)

	if sc.chartFile != "" {
		chartErr := sc.writeChart(classified)
		if chartErr != nil {
			return chartErr
		}
	}

	renderer := &report.Renderer{NoColor: sc.noColor}

	return renderer.Render(sc.format, classified, sc.writer)
}

// applyConfig fills settings from the config file for flags the user did
// not set explicitly. Flags always win.
func (sc *ScanCommand) applyConfig(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if !flags.Changed("format") {
		sc.format = cfg.Format
	}

	if !flags.Changed("workers") {
		sc.workers = cfg.Workers
	}

	if !flags.Changed("exclude-catalog") {
		sc.excludeCatalog = cfg.ExcludeCatalog
	}

	if !flags.Changed("catalog") {
		sc.catalogFile = cfg.CatalogFile
	}

	if !flags.Changed("chart") {
		sc.chartFile = cfg.ChartFile
	}

	if !flags.Changed("validate-notebooks") {
		sc.validateNotebooks = cfg.ValidateNotebooks
	}
}

func (sc *ScanCommand) setupLogging() {
	level := slog.LevelInfo

	switch {
	case sc.verbose:
		level = slog.LevelDebug
	case sc.quiet:
		level = slog.LevelError
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// buildCatalog combines the embedded standard-library catalog with an
// optional user-supplied catalog file.
func (sc *ScanCommand) buildCatalog() (catalog.Catalog, error) {
	cats := catalog.Union{catalog.Stdlib()}

	if sc.catalogFile != "" {
		fileCat, err := catalog.LoadFile(sc.catalogFile)
		if err != nil {
			return nil, err
		}

		cats = append(cats, fileCat)
	}

	return cats, nil
}

func (sc *ScanCommand) writeChart(classified importmodel.Report) error {
	f, err := os.Create(sc.chartFile)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}

	defer f.Close()

	return report.WriteChart(classified, f)
}
