package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// rangeValue is a pflag.Value for MIN:MAX interval flags.
type rangeValue struct {
	min, max float64
}

var _ pflag.Value = (*rangeValue)(nil)

func (r *rangeValue) String() string {
	return fmt.Sprintf("%s:%s",
		strconv.FormatFloat(r.min, 'g', -1, 64),
		strconv.FormatFloat(r.max, 'g', -1, 64))
}

func (r *rangeValue) Set(s string) error {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("expected MIN:MAX, got %q", s)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return fmt.Errorf("invalid lower bound %q", parts[0])
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return fmt.Errorf("invalid upper bound %q", parts[1])
	}
	r.min, r.max = lo, hi
	return nil
}

func (r *rangeValue) Type() string { return "range" }
