package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ZawadulAmanHredoy/export-import-hub/internal/api"
	"github.com/ZawadulAmanHredoy/export-import-hub/internal/bootstrap"
	"github.com/ZawadulAmanHredoy/export-import-hub/internal/quantity"
	"github.com/ZawadulAmanHredoy/export-import-hub/internal/view"
)

func newRootCmd(app *bootstrap.App) *cobra.Command {
	root := &cobra.Command{
		Use:           "hubcli",
		Short:         "Browse export products, record imports, manage your listings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newProductsCmd(app),
		newProductCmd(app),
		newHomeCmd(app),
		newImportCmd(app),
		newImportsCmd(app),
		newExportsCmd(app),
		newWhoamiCmd(app),
	)
	return root
}

func newProductsCmd(app *bootstrap.App) *cobra.Command {
	var (
		search    string
		origin    string
		minRating float64
		sortOrder string
		page      int
	)
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the product catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := view.NewCatalog(app.Products, app.Cache, app.PageSize, app.Logger)
			catalog.SetFilter(view.Filter{
				Search:    search,
				Origin:    origin,
				MinRating: minRating,
				Sort:      view.Sort(sortOrder),
			})
			catalog.SetPage(page)

			result, err := catalog.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", result.Message)
			}
			if result.Status == view.StatusEmpty {
				cmd.Println("No products found for your current search/filters.")
				return nil
			}
			renderProducts(cmd.OutOrStdout(), result.Items)
			cmd.Printf("Page %d / %d (%d products)\n", result.Page, result.TotalPages, result.TotalItems)
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "search by product name")
	cmd.Flags().StringVar(&origin, "origin", "", "exact origin country")
	cmd.Flags().Float64Var(&minRating, "min-rating", 0, "minimum rating")
	cmd.Flags().StringVar(&sortOrder, "sort", string(view.SortServerOrder),
		"sort order: newest, price-asc, price-desc, rating-desc, qty-desc")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func newProductCmd(app *bootstrap.App) *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail := view.NewDetail(app.Products, app.Imports, app.Cache, app.Logger)
			product, err := detail.Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s", api.UserMessage(err, "Failed to load product"))
			}
			renderProductDetail(cmd.OutOrStdout(), product)
			return nil
		},
	}
}

func newHomeCmd(app *bootstrap.App) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Landing page: latest products, top rated, stats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			home := view.NewHome(app.Products, app.Cache, app.Logger)
			myImports := view.NewMyImports(app.Imports, app.Cache, app.Logger)

			// Independent fetches run concurrently; each failure is isolated.
			var homeData *view.HomeData
			var importData *view.ImportList
			var importErr error
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				var err error
				homeData, err = home.Load(ctx)
				return err
			})
			g.Go(func() error {
				importData, importErr = myImports.Load(ctx)
				// Anonymous sessions simply have no import panel.
				return nil
			})
			if err := g.Wait(); err != nil {
				return fmt.Errorf("%s", homeData.Message)
			}

			cmd.Println("Latest products:")
			renderProducts(cmd.OutOrStdout(), homeData.Latest)
			if len(homeData.TopRated) > 0 {
				cmd.Println("Top rated:")
				renderProducts(cmd.OutOrStdout(), homeData.TopRated)
			}
			if len(homeData.Origins) > 0 {
				cmd.Println("By origin:")
				renderOrigins(cmd.OutOrStdout(), homeData.Origins)
			}
			cmd.Println("Stats:")
			renderStats(cmd.OutOrStdout(), homeData)

			if importErr == nil && importData != nil && importData.Status == view.StatusReady {
				cmd.Println("Your imports:")
				renderImports(cmd.OutOrStdout(), importData.Items)
			}
			return nil
		},
	}
}

func newImportCmd(app *bootstrap.App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <product-id> <quantity>",
		Short: "Record an import, bounded by available stock",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail := view.NewDetail(app.Products, app.Imports, app.Cache, app.Logger)

			product, err := detail.Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s", api.UserMessage(err, "Failed to load product"))
			}
			qty, err := quantity.Parse(args[1], product.AvailableQty)
			if err != nil {
				return fmt.Errorf("%v (max %d)", err, product.AvailableQty)
			}

			record, err := detail.ImportNow(cmd.Context(), args[0], qty)
			if err != nil {
				return fmt.Errorf("%s", api.UserMessage(err, "Import failed"))
			}
			cmd.Printf("Imported %d x %s (record %s)\n", record.Quantity, record.Product.Name, record.ID)
			return nil
		},
	}
}

func newImportsCmd(app *bootstrap.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imports",
		Short: "List your import records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			myImports := view.NewMyImports(app.Imports, app.Cache, app.Logger)
			result, err := myImports.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", result.Message)
			}
			if result.Status == view.StatusEmpty {
				cmd.Println("No imports yet.")
				return nil
			}
			renderImports(cmd.OutOrStdout(), result.Items)
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove one of your import records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			myImports := view.NewMyImports(app.Imports, app.Cache, app.Logger)
			if err := myImports.Remove(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("%s", api.UserMessage(err, "Remove failed"))
			}
			cmd.Println("Removed from your imports.")
			return nil
		},
	})
	return cmd
}

func newExportsCmd(app *bootstrap.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exports",
		Short: "List your export listings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			myExports := view.NewMyExports(app.Products, app.Exports, app.Cache, app.Logger)
			result, err := myExports.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", result.Message)
			}
			if result.Status == view.StatusEmpty {
				cmd.Println("No exports yet.")
				return nil
			}
			renderProducts(cmd.OutOrStdout(), result.Items)
			return nil
		},
	}
	cmd.AddCommand(newExportsAddCmd(app), newExportsUpdateCmd(app), newExportsDeleteCmd(app))
	return cmd
}

func exportInputFlags(cmd *cobra.Command, input *api.ExportInput) {
	cmd.Flags().StringVar(&input.Name, "name", "", "product name (required)")
	cmd.Flags().StringVar(&input.ImageURL, "image", "", "product image URL")
	cmd.Flags().Float64Var(&input.Price, "price", 0, "price")
	cmd.Flags().StringVar(&input.OriginCountry, "origin", "", "origin country")
	cmd.Flags().Float64Var(&input.Rating, "rating", 0, "rating 0-5")
	cmd.Flags().IntVar(&input.AvailableQty, "qty", 0, "available quantity")
}

func newExportsAddCmd(app *bootstrap.App) *cobra.Command {
	var input api.ExportInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Publish a new export listing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			myExports := view.NewMyExports(app.Products, app.Exports, app.Cache, app.Logger)
			created, err := myExports.Add(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("%s", api.UserMessage(err, "Add failed"))
			}
			cmd.Printf("Export added: %s (%s)\n", created.Name, created.ID)
			return nil
		},
	}
	exportInputFlags(cmd, &input)
	return cmd
}

func newExportsUpdateCmd(app *bootstrap.App) *cobra.Command {
	var input api.ExportInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update one of your listings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			myExports := view.NewMyExports(app.Products, app.Exports, app.Cache, app.Logger)
			updated, err := myExports.Update(cmd.Context(), args[0], input)
			if err != nil {
				return fmt.Errorf("%s", api.UserMessage(err, "Update failed"))
			}
			cmd.Printf("Export updated: %s (available: %s)\n", updated.Name, strconv.Itoa(updated.AvailableQty))
			return nil
		},
	}
	exportInputFlags(cmd, &input)
	return cmd
}

func newExportsDeleteCmd(app *bootstrap.App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your listings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			myExports := view.NewMyExports(app.Products, app.Exports, app.Cache, app.Logger)
			if err := myExports.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("%s", api.UserMessage(err, "Delete failed"))
			}
			cmd.Println("Export deleted.")
			return nil
		},
	}
}

func newWhoamiCmd(app *bootstrap.App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := app.Session.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			if user == nil {
				cmd.Println("Not signed in.")
				return nil
			}
			cmd.Printf("%s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
}
