package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mmuldo/lutter/lut"
	"github.com/spf13/cobra"
)

// presetCmd represents the preset command
var presetCmd = &cobra.Command{
	Use:   "preset NAME",
	Short: "Writes a built-in LUT as a .cube file",
	Long:  "Writes a built-in LUT as a .cube file. Available presets: " + strings.Join(lut.Presets(), ", "),
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, _ := cmd.Flags().GetInt("size")
		outputPath, _ := cmd.Flags().GetString("output")

		g, err := lut.Preset(args[0], size)
		if err != nil {
			return err
		}

		w := os.Stdout
		if outputPath != "" && outputPath != "-" {
			f, err := os.Create(outputPath)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}

		if err := lut.Write(w, "lutter "+args[0], g); err != nil {
			return fmt.Errorf("writing %s: %w", args[0], err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(presetCmd)

	presetCmd.Flags().IntP("size", "n", 33, "grid edge length")
	presetCmd.Flags().StringP("output", "o", "-", "output .cube file")
}
