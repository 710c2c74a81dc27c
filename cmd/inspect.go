package cmd

import (
	"fmt"

	"github.com/mmuldo/lutter/lut"
	"github.com/spf13/cobra"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Prints the header and corner samples of a .cube LUT",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := lut.Load(args[0])
		if err != nil {
			return err
		}

		n := c.Grid.EdgeLength() - 1
		fmt.Printf("File:        %s\n", args[0])
		fmt.Printf("Title:       %s\n", c.Title)
		fmt.Printf("Edge length: %d (%d samples)\n", n+1, (n+1)*(n+1)*(n+1))
		fmt.Printf("Domain:      %v .. %v\n", c.DomainMin, c.DomainMax)

		corners := []struct {
			name    string
			x, y, z int
		}{
			{"black", 0, 0, 0},
			{"red", n, 0, 0},
			{"green", 0, n, 0},
			{"blue", 0, 0, n},
			{"white", n, n, n},
		}
		for _, k := range corners {
			r, g, b := c.Grid.Sample(k.x, k.y, k.z)
			fmt.Printf("  %-6s -> #%02x%02x%02x\n", k.name, r, g, b)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
