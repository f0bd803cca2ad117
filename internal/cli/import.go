package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/navstash/internal/logger"
	"github.com/MrSnakeDoc/navstash/internal/sources/homepage"
)

func newImportCmd() *cobra.Command {
	var (
		bookmarksFile string
		servicesFile  string
		dryRun        bool
	)

	cmd := &cobra.Command{
		Use:   "import-homepage",
		Short: "Merge Homepage bookmarks.yaml/services.yaml into the store",
		Long: "Reads Homepage (gethomepage.dev) configuration files, maps each group to a " +
			"category and each entry to a link, and merges them into the stored document. " +
			"URLs already present are skipped.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if bookmarksFile == "" && servicesFile == "" {
				return fmt.Errorf("at least one of --bookmarks or --services is required")
			}

			_, log, backend, err := openStore()
			if err != nil {
				return err
			}
			defer backend.Close()

			mapper := homepage.NewMapper(nil)
			var imports []homepage.Import

			if bookmarksFile != "" {
				cfg, err := homepage.LoadBookmarks(bookmarksFile)
				if err != nil {
					return err
				}
				imports = append(imports, mapper.MapBookmarks(cfg))
			}
			if servicesFile != "" {
				cfg, err := homepage.LoadServices(servicesFile)
				if err != nil {
					return err
				}
				imports = append(imports, mapper.MapServices(cfg))
			}

			ctx := cmd.Context()
			data, err := backend.Store.AppData(ctx)
			if err != nil {
				return err
			}

			var addedCats, addedLinks int
			for _, imp := range imports {
				c, l := homepage.Merge(data, imp)
				addedCats += c
				addedLinks += l
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "dry run: would add %d categories, %d links\n", addedCats, addedLinks)
				return nil
			}

			if err := backend.Store.SaveAppData(ctx, data); err != nil {
				return err
			}

			log.Info("homepage import done",
				logger.Int("categories_added", addedCats),
				logger.Int("links_added", addedLinks))
			fmt.Fprintf(out, "✅ added %d categories, %d links\n", addedCats, addedLinks)
			return nil
		},
	}

	cmd.Flags().StringVar(&bookmarksFile, "bookmarks", "", "Path to Homepage bookmarks.yaml")
	cmd.Flags().StringVar(&servicesFile, "services", "", "Path to Homepage services.yaml")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be added without saving")
	return cmd
}
