package colour

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Format selects how palette components are written.
type Format int

const (
	// FormatByte writes integer components in [0, 255].
	FormatByte Format = iota
	// FormatFloat writes the normalised components produced by the
	// perceptual conversion, unclamped.
	FormatFloat
)

// ParseFormat parses a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "byte":
		return FormatByte, nil
	case "float":
		return FormatFloat, nil
	default:
		return 0, fmt.Errorf("unknown format %q (expected byte or float)", s)
	}
}

func (f Format) String() string {
	if f == FormatFloat {
		return "float"
	}
	return "byte"
}

// ParseError reports a malformed line in a palette file.
type ParseError struct {
	Line int    // 1-based line number
	Text string // offending line as read
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("palette line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParsePalette reads the palette text format: one colour per line, three
// comma-separated integer components in [0, 255]. Blank lines are skipped.
func ParsePalette(r io.Reader) ([]RGB, error) {
	var palette []RGB
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		c, err := parseLine(text)
		if err != nil {
			return nil, &ParseError{Line: line, Text: text, Err: err}
		}
		palette = append(palette, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read palette: %w", err)
	}
	return palette, nil
}

func parseLine(text string) (RGB, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 3 {
		return RGB{}, fmt.Errorf("expected 3 components, got %d", len(parts))
	}
	var comps [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return RGB{}, fmt.Errorf("component %q is not an integer", strings.TrimSpace(p))
		}
		comps[i] = v
	}
	return FromInts(comps[0], comps[1], comps[2])
}

// LoadPaletteFile reads a palette from a file path.
func LoadPaletteFile(path string) ([]RGB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open base palette: %w", err)
	}
	defer f.Close()
	return ParsePalette(f)
}

// EncodeBytes writes colours in byte format, one per line.
func EncodeBytes(w io.Writer, palette []RGB) error {
	for _, c := range palette {
		if _, err := fmt.Fprintf(w, "%d,%d,%d\n", c.R, c.G, c.B); err != nil {
			return err
		}
	}
	return nil
}

// EncodeFloats writes normalised float triplets, one per line. Components are
// written as produced by the conversion and may fall outside [0, 1].
func EncodeFloats(w io.Writer, palette [][3]float64) error {
	for _, c := range palette {
		_, err := fmt.Fprintf(w, "%s,%s,%s\n",
			strconv.FormatFloat(c[0], 'g', -1, 64),
			strconv.FormatFloat(c[1], 'g', -1, 64),
			strconv.FormatFloat(c[2], 'g', -1, 64))
		if err != nil {
			return err
		}
	}
	return nil
}
