package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/knot-systems/knot.SDK/goknot"
	"github.com/knot-systems/knot.SDK/libknot"
)

func invarCmd() *cobra.Command {
	var (
		jones   bool
		alex    bool
		svgPath string
	)

	cmd := &cobra.Command{
		Use:   "invar <name|expr|file.json>",
		Short: "Print invariants for a knot or link",
		Long: `Print invariants for a knot or link.

The argument is resolved as a Rolfsen table name first, then as a knot
file pathname, then as a construction expression.

Examples:
  goknot invar 4_1
  goknot invar trefoil.json --jones --alex
  goknot invar "X-[1,4,2,5] X-[3,6,4,1] X-[5,2,6,3]: (1 2 3 4 5 6)"`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()

			k, err := resolveKnot(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			opts := goknot.DefaultPrintOpts
			opts.Jones = jones || cfg.Print.Jones
			opts.Alex = alex || cfg.Print.Alex
			if cfg.BracketCeiling > 0 {
				opts.Bracket.MaxCrossings = cfg.BracketCeiling
			}

			k.WriteAsString(os.Stdout, opts)
			fmt.Println()

			if svgPath != "" {
				svg, err := k.RenderSVG(context.Background())
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					os.Exit(1)
				}
				if err := os.WriteFile(svgPath, svg, 0644); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					os.Exit(1)
				}
				fmt.Printf("wrote %s\n", svgPath)
			}
		},
	}

	cmd.Flags().BoolVar(&jones, "jones", false, "Include the Jones polynomial")
	cmd.Flags().BoolVar(&alex, "alex", false, "Include the Alexander estimate")
	cmd.Flags().StringVar(&svgPath, "svg", "", "Also render the diagram to an SVG file")

	return cmd
}

// resolveKnot tries the Rolfsen table, then a knot file on disk, then the
// expression grammar.
func resolveKnot(arg string) (*libknot.Knot, error) {
	if k, err := libknot.Lookup(arg); err == nil {
		return k, nil
	}
	if _, err := os.Stat(arg); err == nil {
		return libknot.ReadKnotFile(arg)
	}
	return libknot.ParseKnot(arg)
}
