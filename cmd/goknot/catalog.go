package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/knot-systems/knot.SDK/goknot"
	"github.com/knot-systems/knot.SDK/libknot"
	"github.com/knot-systems/knot.SDK/libknot/catalog"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Knot catalog management",
		Long:  "Seed and inspect persistent knot catalogs",
	}

	var dbPath string

	// goknot catalog seed
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Add the built-in knot table to a catalog",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := goknot.NewCatalogContext()

			cat, err := openCatalogCLI(ctx, catalogDbPath(cmd, dbPath), false)
			if err == nil {
				added := libknot.StreamTable().AddTo(cat).PullAll()
				fmt.Printf("added %d new knots\n", added)
			}

			ctx.Close()
			<-ctx.Done()
			if err != nil {
				os.Exit(1)
			}
		},
	}

	// goknot catalog stats
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-crossing entry counts for a catalog",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := goknot.NewCatalogContext()

			cat, err := openCatalogCLI(ctx, catalogDbPath(cmd, dbPath), true)
			if err == nil {
				total := int64(0)
				for n := 0; n <= goknot.MaxCatalogCrossings; n++ {
					count := cat.NumKnots(n)
					if count > 0 {
						fmt.Printf("  %3d crossings: %d\n", n, count)
						total += count
					}
				}
				fmt.Printf("  total: %d\n", total)
			}

			ctx.Close()
			<-ctx.Done()
			if err != nil {
				os.Exit(1)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "knots.db", "Catalog database path")
	cmd.AddCommand(seedCmd, statsCmd)

	return cmd
}

// catalogDbPath resolves the catalog pathname, letting goknot.toml supply it
// when the --db flag is left at its default.
func catalogDbPath(cmd *cobra.Command, flagVal string) string {
	if cmd.Flag("db").Changed {
		return flagVal
	}
	if cfg := loadConfig(); cfg.CatalogPath != "" {
		return cfg.CatalogPath
	}
	return flagVal
}

func openCatalogCLI(ctx goknot.CatalogContext, dbPath string, readOnly bool) (goknot.Catalog, error) {
	cat, err := catalog.OpenCatalog(ctx, goknot.CatalogOpts{
		DbPathName: dbPath,
		ReadOnly:   readOnly,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return cat, err
}
