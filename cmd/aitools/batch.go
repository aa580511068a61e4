package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"aitools-engine/internal/categorize"
	"aitools-engine/internal/ingest"
	"aitools-engine/internal/store"
)

// withStore opens the database under the batch lock for the duration of fn.
func withStore(ctx context.Context, opts *cliOptions, fn func(*store.DB) error) error {
	unlock, err := categorize.Lock(ctx, opts.dataDir)
	if err != nil {
		return err
	}
	defer unlock()

	db, err := opts.openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newImportCmd(opts *cliOptions) *cobra.Command {
	var dir string
	var deleteExisting bool
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import tool records from a directory of JSON files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := ctxOf(cmd)
			mapper, err := opts.mapper(opts.cfg.Categorize)
			if err != nil {
				return err
			}
			return withStore(ctx, opts, func(db *store.DB) error {
				im := ingest.Importer{DB: db.Pool, Cfg: opts.cfg.Ingest, Mapper: mapper, Log: opts.logger.Named("ingest")}
				st, err := im.Import(ctx, ingest.ImportOptions{Dir: dir, DeleteExisting: deleteExisting})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "files=%d inserted=%d updated=%d invalid=%d deleted=%d\n",
					st.Files, st.Inserted, st.Updated, st.Invalid, st.Deleted)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "record directory (default ingest.tools_dir)")
	cmd.Flags().BoolVar(&deleteExisting, "delete-existing", false, "delete every stored tool first")
	return cmd
}

func newSeedCategoriesCmd(opts *cliOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed-categories",
		Short: "Store the category catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := ctxOf(cmd)
			c, err := opts.catalog()
			if err != nil {
				return err
			}
			return withStore(ctx, opts, func(db *store.DB) error {
				n, err := ingest.SeedCategories(ctx, db.Pool, c, force)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d categories\n", n)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing catalog")
	return cmd
}

func newCategorizeCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categorize",
		Short: "Re-run category mapping over every stored tool",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := ctxOf(cmd)
			mapper, err := opts.mapper(opts.cfg.Categorize)
			if err != nil {
				return err
			}
			return withStore(ctx, opts, func(db *store.DB) error {
				st, err := categorize.Runner{
					DB:     db.Pool,
					Mapper: mapper,
					Cfg:    opts.cfg.Categorize,
					Log:    opts.logger.Named("categorize"),
				}.Run(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "processed=%d changed=%d failed=%d in %s\n",
					st.Processed, st.Changed, st.Failed, st.Duration)
				return nil
			})
		},
	}
}

func newReconcileCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Recompute category counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := ctxOf(cmd)
			return withStore(ctx, opts, func(db *store.DB) error {
				n, err := categorize.Reconcile(ctx, db.Pool, opts.logger, nil, nil)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reconciled %d categories\n", n)
				return nil
			})
		},
	}
}

func newFixImagesCmd(opts *cliOptions) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "fix-images",
		Short: "Restore source image URLs from the record files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := ctxOf(cmd)
			return withStore(ctx, opts, func(db *store.DB) error {
				im := ingest.Importer{DB: db.Pool, Cfg: opts.cfg.Ingest, Log: opts.logger.Named("ingest")}
				st, err := im.FixImages(ctx, dir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "records=%d updated=%d not_found=%d\n", st.Records, st.Updated, st.NotFound)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "record directory (default ingest.tools_dir)")
	return cmd
}

func newCheckCategoriesCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check-categories",
		Short: "List stored categories with their tool counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := opts.openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			cats, err := store.ListCategories(ctxOf(cmd), db.Pool)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ORDER\tNAME\tSLUG\tCOUNT")
			total := 0
			for _, c := range cats {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", c.DisplayOrder, c.Name, c.Slug, c.Count)
				total += c.Count
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d categories, %d assignments\n", len(cats), total)
			if len(cats) == 0 {
				fmt.Fprintln(os.Stderr, "no categories stored; run seed-categories")
			}
			return nil
		},
	}
}
