package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "medtrust",
	Short:         "Zero-trust access gateway for patient records",
	Long:          "Decides whether a clinician may open a patient record based on network location, a per-user trust score and the justification they give.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
