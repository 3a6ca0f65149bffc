package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jmylchreest/glasbey/internal/cam02"
	"github.com/jmylchreest/glasbey/internal/colour"
	"github.com/jmylchreest/glasbey/internal/lut"
	"github.com/jmylchreest/glasbey/internal/palette"
	"github.com/jmylchreest/glasbey/internal/render"
	"github.com/spf13/cobra"
)

var (
	// Generate command flags
	generateBasePalette string
	generateNoBlack     bool
	generateLightness   = rangeValue{min: 0, max: 100}
	generateChroma      = rangeValue{min: 0, max: 150}
	generateHue         = rangeValue{min: 0, max: 360}
	generateFormat      string
	generateView        bool
	generateCacheDir    string
	generateResolution  int
	generateForce       bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate SIZE OUTPUT",
	Short: "Generate a palette of maximally distinct colours",
	Long: `Generate a palette of SIZE maximally distinct colours and write it to
OUTPUT as text, one colour per line with comma-separated components. An
OUTPUT of "-" writes to stdout.

A base palette may be supplied; the output palette then begins with exactly
those colours and the generated colours extend them (the base counts toward
SIZE). Without one, white is used as the first colour. The base palette file
uses the same text format as the output.

Candidates can be restricted to perceptual ranges: --lightness-range and
--chroma-range are plain intervals, --hue-range is an interval of degrees
that may wrap past 360 (e.g. 300:60 covers magenta through yellow).

Examples:
  # 32 distinct colours to stdout
  glasbey generate 32 -

  # extend ColorBrewer Set1 to 16 colours, avoiding near-black colours
  glasbey generate --base-palette set1.txt --no-black 16 set1_16.txt

  # mid-lightness palette restricted to warm hues, with a PNG preview
  glasbey generate --lightness-range 30:70 --hue-range 300:90 --view 24 warm.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateBasePalette, "base-palette", "b", "", "file with base palette")
	generateCmd.Flags().BoolVar(&generateNoBlack, "no-black", false, "avoid black and similar colours")
	generateCmd.Flags().Var(&generateLightness, "lightness-range", "eligible lightness interval MIN:MAX (J*, 0 to 100)")
	generateCmd.Flags().Var(&generateChroma, "chroma-range", "eligible chroma interval MIN:MAX")
	generateCmd.Flags().Var(&generateHue, "hue-range", "eligible hue interval MIN:MAX in degrees, may wrap past 360")
	generateCmd.Flags().StringVar(&generateFormat, "format", "byte", "output component format (byte or float)")
	generateCmd.Flags().BoolVar(&generateView, "view", false, "also write a swatch preview as OUTPUT.png")
	generateCmd.Flags().StringVar(&generateCacheDir, "cache-dir", "", "candidate table cache directory (default: user cache dir)")
	generateCmd.Flags().IntVar(&generateResolution, "resolution", lut.DefaultResolution, "candidate grid points per RGB channel")
	generateCmd.Flags().BoolVarP(&generateForce, "force", "f", false, "overwrite OUTPUT if it exists")
}

// runGenerate executes the generate command.
func runGenerate(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	size, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid size %q", args[0])
	}
	output := args[1]

	format, err := colour.ParseFormat(generateFormat)
	if err != nil {
		return err
	}

	cons := palette.Constraints{
		Lightness: palette.Range{Min: generateLightness.min, Max: generateLightness.max},
		Chroma:    palette.Range{Min: generateChroma.min, Max: generateChroma.max},
		Hue:       palette.HueRange{Start: generateHue.min, End: generateHue.max},
		NoBlack:   generateNoBlack,
	}

	gen, err := palette.NewGenerator(palette.Config{
		BaseFile:      generateBasePalette,
		Constraints:   cons,
		Resolution:    generateResolution,
		Store:         lut.NewStore(generateCacheDir, logger),
		Logger:        logger,
		BuildProgress: progressBar(os.Stderr, "Generating colour table"),
		StepProgress:  progressBar(os.Stderr, "Generating palette"),
	})
	if err != nil {
		return err
	}

	coords, err := gen.Generate(cmd.Context(), size)
	if err != nil {
		return err
	}

	if err := writePalette(output, format, coords); err != nil {
		return err
	}

	if generateView {
		if err := writePreview(output, palette.Bytes(coords)); err != nil {
			return err
		}
	}
	return nil
}

func writePalette(output string, format colour.Format, coords []cam02.JAB) error {
	var w io.Writer = os.Stdout
	if output != "-" {
		flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		if !generateForce {
			flags |= os.O_EXCL
		}
		f, err := os.OpenFile(output, flags, 0o644)
		if err != nil {
			if os.IsExist(err) {
				return fmt.Errorf("output %s already exists (use --force to overwrite)", output)
			}
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if format == colour.FormatFloat {
		return colour.EncodeFloats(w, palette.Floats(coords))
	}
	return colour.EncodeBytes(w, palette.Bytes(coords))
}

func writePreview(output string, colors []colour.RGB) error {
	if output == "-" {
		return fmt.Errorf("--view needs a file OUTPUT to name the preview image")
	}
	path := strings.TrimSuffix(output, ".txt") + ".png"
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	defer f.Close()
	img := render.Swatch(colors, render.Options{Labels: true})
	return render.WritePNG(f, img)
}
