package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/raphaelgruber/sopmigrate-go/internal/extractor"
	"github.com/raphaelgruber/sopmigrate-go/internal/llm"
	"github.com/raphaelgruber/sopmigrate-go/internal/reader"
	"github.com/raphaelgruber/sopmigrate-go/internal/samples"
	"github.com/raphaelgruber/sopmigrate-go/internal/service"
)

var (
	migrateFormat string
	migrateSample string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [input-file]",
	Short: "Run one legacy document through the migration pipeline",
	Long: `Migrate reads a legacy SOP document, extracts a standardized record via
the configured AI capability, and writes a branded Word document.

The input format is inferred from the file extension; use --format to
override. Use --sample to run one of the bundled demo documents instead
of a file.

Examples:
  sopmigrate migrate old_procedure.txt
  sopmigrate migrate scanned_sop.pdf --model gpt-4o
  sopmigrate migrate notes.dat --format text
  sopmigrate migrate --sample pump-maintenance`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVarP(&migrateFormat, "format", "f", "",
		"input format (text or pdf; default: by file extension)")
	migrateCmd.Flags().StringVarP(&migrateSample, "sample", "s", "",
		"migrate a bundled sample document (see 'sopmigrate samples')")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Obtain raw text first: it survives a failed extraction, so a
	// retry never has to re-read the input.
	var rawText, source string
	switch {
	case migrateSample != "":
		sample, text, err := samples.Load(migrateSample)
		if err != nil {
			return err
		}
		rawText, source = text, sample.Name

	case len(args) == 1:
		path := args[0]
		kind, err := kindForFlag(path, migrateFormat)
		if err != nil {
			return err
		}
		text, err := reader.Read(path, kind)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		rawText, source = text, path

	default:
		return errors.New("an input file or --sample is required")
	}

	capability, err := llm.New(ctx, cfg)
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			return fmt.Errorf("%w (the key is read from the environment, .env, or --api-key)", err)
		}
		return err
	}

	svc := service.NewMigrationService(extractor.New(capability, logger), cfg.OutputDir, logger)

	fmt.Printf("Read %d characters from %s\n", len(rawText), source)

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	label := fmt.Sprintf("Extracting structured data with %s...", cfg.Model)

	var res *service.Result
	err = runWithSpinner(label, interactive, func() error {
		var err error
		res, err = svc.MigrateText(ctx, rawText, cfg.Model)
		return err
	})
	if errors.Is(err, errAborted) {
		fmt.Println(defaultTheme.hintStyle().Render("Aborted. The in-flight extraction was abandoned; re-run to retry."))
		return nil
	}
	if err != nil {
		return err
	}

	printSummary(res)
	return nil
}

func kindForFlag(path, format string) (reader.Kind, error) {
	switch format {
	case "":
		return reader.KindForPath(path), nil
	case "text", "txt":
		return reader.KindPlainText, nil
	case "pdf":
		return reader.KindPaginated, nil
	default:
		return "", fmt.Errorf("%w: --format %q", reader.ErrUnsupportedFormat, format)
	}
}

func printSummary(res *service.Result) {
	rec := res.Record
	theme := defaultTheme

	fmt.Println(theme.completedStyle().Render("✓ Migration complete"))
	fmt.Println()
	fmt.Printf("  Title:           %s\n", rec.Title)

	idNote := ""
	if !rec.MatchesIDPattern() {
		idNote = " " + theme.hintStyle().Render("(nonstandard format, review before filing)")
	}
	fmt.Printf("  Document ID:     %s%s\n", rec.DocumentID, idNote)
	fmt.Printf("  Version:         %s\n", rec.Version)
	fmt.Printf("  Department:      %s\n", rec.Department)
	fmt.Printf("  Confidence:      %d/10\n", rec.ConfidenceScore)
	fmt.Printf("  Safety warnings: %d\n", len(rec.SafetyWarnings))
	fmt.Printf("  Equipment items: %d\n", len(rec.Equipment))
	fmt.Printf("  Steps:           %d\n", len(rec.Steps))
	fmt.Println()
	fmt.Printf("  Saved to: %s\n", theme.statusStyle().Render(res.ArtifactPath))
	fmt.Println()
	fmt.Println(theme.hintStyle().Render("Auto-generated document: review and approve before use."))
}
