package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	lutimage "github.com/mmuldo/lutter/image"
	"github.com/mmuldo/lutter/job"
	"github.com/mmuldo/lutter/lut"
	"github.com/mmuldo/lutter/palette"
	"github.com/mmuldo/lutter/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// applyCmd represents the apply command
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Applies a .cube LUT to an image",
	Long: `Applies a .cube LUT to a PNG or JPEG image and writes the graded result.
Alpha is preserved. With --report, a summary of the color shift is printed
using a pongo2 template (see report-template in the config file).`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringP("input", "i", "", "input image")
	applyCmd.Flags().StringP("lut", "l", "", ".cube LUT file")
	applyCmd.Flags().StringP("output", "o", "", "output image (.png or .jpg)")
	applyCmd.Flags().Int("quality", 90, "JPEG quality (1-100)")
	applyCmd.Flags().Bool("report", false, "print a color shift report")
	applyCmd.Flags().Bool("progress", true, "show progress on stderr")
	applyCmd.Flags().Int("palette-size", 6, "dominant colors listed in the report")
	applyCmd.Flags().String("report-template", "", "pongo2 template for the report, or @file")
	applyCmd.MarkFlagRequired("input")
	applyCmd.MarkFlagRequired("lut")
	applyCmd.MarkFlagRequired("output")

	viper.BindPFlag("progress", applyCmd.Flags().Lookup("progress"))
	viper.BindPFlag("palette-size", applyCmd.Flags().Lookup("palette-size"))
	viper.BindPFlag("report-template", applyCmd.Flags().Lookup("report-template"))
}

func runApply(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	lutPath, _ := cmd.Flags().GetString("lut")
	outputPath, _ := cmd.Flags().GetString("output")
	quality, _ := cmd.Flags().GetInt("quality")
	withReport, _ := cmd.Flags().GetBool("report")

	img, err := lutimage.Load(inputPath)
	if err != nil {
		return err
	}

	cube, err := lut.Load(lutPath)
	if err != nil {
		return fmt.Errorf("loading LUT: %w", err)
	}

	buf := lutimage.Pixels(img)
	var before *lutimage.Buffer
	if withReport {
		before = buf.Clone()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	d := job.NewDispatcher(logger)
	defer d.Close()

	if _, err := d.Start(buf.Pix, cube.Grid); err != nil {
		return err
	}

	showProgress := viper.GetBool("progress")
	buf.Pix, err = d.Await(ctx, func(percent int) {
		if showProgress {
			fmt.Fprintf(os.Stderr, "\rapplying %s %3d%%", filepath.Base(lutPath), percent)
		}
	})
	if showProgress {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return fmt.Errorf("applying LUT: %w", err)
	}

	out, err := buf.Image()
	if err != nil {
		return err
	}
	if err := lutimage.Save(outputPath, out, quality); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if !withReport {
		return nil
	}

	shift, err := palette.MeanDeltaE(before.Pix, buf.Pix)
	if err != nil {
		return err
	}
	colors, err := palette.Dominant(out, viper.GetInt("palette-size"))
	if err != nil {
		return err
	}

	r := report.Create(report.Summary{
		Input:      inputPath,
		Output:     outputPath,
		LUT:        lutPath,
		Title:      cube.Title,
		EdgeLength: cube.Grid.EdgeLength(),
		Width:      buf.Width,
		Height:     buf.Height,
		Shift:      shift,
		Colors:     colors,
	}, viper.GetStringMap("report-vars"))

	o, err := r.Render(viper.GetString("report-template"))
	if err != nil {
		return err
	}
	fmt.Print(o)

	return nil
}
