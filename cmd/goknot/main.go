package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {

	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "2")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	rootCmd := &cobra.Command{
		Use:   "goknot [script.py]",
		Short: "knot and link invariant engine",
		Long: `goknot computes topological invariants of knots and links: writhe,
Seifert circle count, braid index estimate, Dowker-Thistlethwaite codes,
the Kauffman bracket / Jones polynomial, and a determinant-based
Alexander estimate.

Usage modes:
  goknot              Start the interactive Python REPL
  goknot <script.py>  Execute a Python script against the engine
  goknot <command>    Run a specific goknot command (see below)`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			pathname := ""
			if len(args) > 0 {
				pathname = args[0]
			}
			go_gpython(pathname)
		},
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(invarCmd())
	rootCmd.AddCommand(catalogCmd())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()

	klog.Flush()

	if err != nil {
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show goknot version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("goknot version %s\n", version)
		},
	}
}
