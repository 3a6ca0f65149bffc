// Package cli provides the command-line interface for glasbey.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/glasbey/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagVerbose bool
	flagQuiet   bool

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "glasbey",
		Short: "Generate maximally distinct colour palettes",
		Long: `Glasbey generates palettes of colours that are maximally distinguishable
from one another, for encoding categorical data. Colours are compared in the
CAM02-UCS perceptual space, where numeric distance tracks perceived
difference, using the sequential method of Glasbey et al.¹

The generator needs a lookup table mapping every RGB colour to its perceptual
coordinate. Building the table takes a while, so the first run is slow; the
table is cached on disk and reused by later invocations.

¹) Glasbey, C., van der Heijden, G., Toh, V. F. K. and Gray, A. (2007),
   Colour Displays for Categorical Images.
   Color Research and Application, 32: 304-309`,
		Version:      version.Short(),
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress non-error output")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(viewCmd)
}

// newLogger builds the logger shared by all commands, honouring the global
// verbosity flags.
func newLogger() hclog.Logger {
	level := hclog.Info
	switch {
	case flagQuiet:
		level = hclog.Error
	case flagVerbose:
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "glasbey",
		Level:  level,
		Output: os.Stderr,
	})
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
