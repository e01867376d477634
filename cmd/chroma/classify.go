package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chroma-arcade/internal/color"
	"github.com/vovakirdan/chroma-arcade/internal/config"
	"github.com/vovakirdan/chroma-arcade/internal/sampler"
)

var (
	flagImage   string
	flagPalette string
)

var classifyCmd = &cobra.Command{
	Use:   "classify [#hex | r,g,b]",
	Short: "Name a colour and its warm/cool bucket",
	Long: `Match a colour to the nearest palette entry and report which
bucket it belongs to.

The colour can be given as hex, as an r,g,b triple, or read from an
image with --image (the average of a cross of pixels around the centre,
the same reading Color Hunt takes).

Examples:
  chroma classify "#ff8800"
  chroma classify 30,144,255
  chroma classify --image photo.png
  chroma classify "#7fffd4" --palette hunt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&flagImage, "image", "", "Read the colour from a PNG, JPEG or GIF")
	classifyCmd.Flags().StringVar(&flagPalette, "palette", "base", "Palette to match against")
}

func runClassify(_ *cobra.Command, args []string) error {
	sample, err := classifyInput(args)
	if err != nil {
		return err
	}

	pals, err := config.LoadPalettes("")
	if err != nil {
		logger.Warn("using built-in palettes", "error", err)
	}
	pal, err := pals.Palette(flagPalette)
	if err != nil {
		return err
	}
	table, err := pals.BucketTable()
	if err != nil {
		return err
	}

	nearest := color.Nearest(sample, pal)
	bucket := "unclassified"
	if b, err := table.Classify(nearest.Name); err == nil {
		bucket = b.String()
	} else if !errors.Is(err, color.ErrUnclassified) {
		return err
	}

	fmt.Fprintf(os.Stdout, "Sample:   %s\n", sample.Hex())
	fmt.Fprintf(os.Stdout, "Nearest:  %s (%s)\n", nearest.Name, nearest.Hex())
	fmt.Fprintf(os.Stdout, "Distance: %.1f\n", color.Distance(sample, nearest.RGB))
	fmt.Fprintf(os.Stdout, "Bucket:   %s\n", bucket)
	return nil
}

// classifyInput resolves the sample from --image or the positional argument.
func classifyInput(args []string) (color.RGB, error) {
	switch {
	case flagImage != "" && len(args) > 0:
		return color.RGB{}, errors.New("give either a colour or --image, not both")
	case flagImage != "":
		img, err := sampler.LoadImage(flagImage)
		if err != nil {
			return color.RGB{}, err
		}
		return sampler.CrossAverage(img)
	case len(args) == 1:
		return parseSample(args[0])
	default:
		return color.RGB{}, errors.New("a colour or --image is required")
	}
}

// parseSample accepts #rrggbb, #rgb or r,g,b.
func parseSample(s string) (color.RGB, error) {
	parts := strings.Split(s, ",")
	if len(parts) == 1 {
		return color.ParseHex(s)
	}
	if len(parts) != 3 {
		return color.RGB{}, fmt.Errorf("invalid colour %q: want r,g,b", s)
	}

	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGB{}, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		ch[i] = uint8(v)
	}
	return color.RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}
