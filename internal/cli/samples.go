package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/sopmigrate-go/internal/samples"
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "List bundled sample documents",
	Long: `List the legacy SOP samples bundled with sopmigrate.

Run one with:
  sopmigrate migrate --sample <id>`,
	Args: cobra.NoArgs,
	RunE: runSamples,
}

func runSamples(cmd *cobra.Command, args []string) error {
	all, err := samples.List()
	if err != nil {
		return err
	}

	for _, s := range all {
		fmt.Printf("%s\n", defaultTheme.statusStyle().Render(s.ID))
		fmt.Printf("  %s\n", s.Name)
		fmt.Printf("  %s\n\n", defaultTheme.hintStyle().Render(s.Description))
	}
	return nil
}
