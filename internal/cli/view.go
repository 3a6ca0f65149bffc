package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jmylchreest/glasbey/internal/colour"
	"github.com/jmylchreest/glasbey/internal/render"
	"github.com/spf13/cobra"
)

var (
	// View command flags
	viewOutput   string
	viewNoLabels bool
	viewWidth    int
	viewRowH     int
)

// viewCmd represents the view command
var viewCmd = &cobra.Command{
	Use:   "view PALETTE",
	Short: "Render a palette file as a swatch image",
	Long: `Render a palette stored in a text file (byte format, one colour per
line) as a PNG swatch image, one horizontal stripe per colour.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVarP(&viewOutput, "output", "o", "", "output PNG path (default: PALETTE with .png extension)")
	viewCmd.Flags().BoolVar(&viewNoLabels, "no-labels", false, "omit hex code labels")
	viewCmd.Flags().IntVar(&viewWidth, "width", 0, "stripe width in pixels")
	viewCmd.Flags().IntVar(&viewRowH, "row-height", 0, "stripe height in pixels")
}

// runView executes the view command.
func runView(cmd *cobra.Command, args []string) error {
	palettePath := args[0]
	colors, err := colour.LoadPaletteFile(palettePath)
	if err != nil {
		return err
	}
	if len(colors) == 0 {
		return fmt.Errorf("palette %s is empty", palettePath)
	}

	out := viewOutput
	if out == "" {
		out = strings.TrimSuffix(palettePath, ".txt") + ".png"
	}

	img := render.Swatch(colors, render.Options{
		Width:     viewWidth,
		RowHeight: viewRowH,
		Labels:    !viewNoLabels,
	})

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	defer f.Close()
	if err := render.WritePNG(f, img); err != nil {
		return err
	}
	cmd.Printf("wrote %s\n", out)
	return nil
}
