package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/aaravmahajanofficial/inventory-client/internal/inventory"
	"github.com/aaravmahajanofficial/inventory-client/internal/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// withRepository builds the app, resolves the mode and runs fn.
func withRepository(cmd *cobra.Command, flags *globalFlags, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, flags)
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.resolve(ctx); err != nil {
		return err
	}

	return fn(ctx, a)
}

// loadProducts turns a list result into data or its error.
func loadProducts(ctx context.Context, a *app) ([]models.Product, error) {
	result := a.repo.List(ctx)
	if result.IsError {
		return nil, result.Err
	}

	return result.Data, nil
}

func parseIDArg(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", arg)
	}

	return id, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTable(w io.Writer, products []models.Product) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tSTATUS")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
			p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Stock, inventory.StockStatus(p.Stock))
	}

	return tw.Flush()
}

func listCmd(flags *globalFlags) *cobra.Command {
	var q inventory.Query
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally filtered and sorted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd, flags, func(ctx context.Context, a *app) error {
				products, err := loadProducts(ctx, a)
				if err != nil {
					return err
				}

				filtered, err := inventory.Filter(products, q)
				if err != nil {
					return err
				}

				if asJSON {
					return printJSON(cmd.OutOrStdout(), filtered)
				}
				return printTable(cmd.OutOrStdout(), filtered)
			})
		},
	}

	cmd.Flags().StringVar(&q.Search, "search", "", "Match against name or description")
	cmd.Flags().StringVar(&q.Category, "category", "", "Only this category")
	cmd.Flags().StringVar(&q.Sort, "sort", inventory.DefaultSort, "name|price|stock|date with -asc or -desc")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")

	return cmd
}

func getCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			return withRepository(cmd, flags, func(ctx context.Context, a *app) error {
				product, err := a.repo.Get(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), product)
			})
		},
	}
}

type productFlags struct {
	name        string
	description string
	price       string
	category    string
	stock       int
}

func (f *productFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Product name")
	cmd.Flags().StringVar(&f.description, "description", "", "Product description")
	cmd.Flags().StringVar(&f.price, "price", "", "Unit price, e.g. 19.99")
	cmd.Flags().StringVar(&f.category, "category", "", "Product category")
	cmd.Flags().IntVar(&f.stock, "stock", 0, "Units in stock")
}

func (f *productFlags) createRequest() (*models.CreateProductRequest, error) {
	price, err := decimal.NewFromString(f.price)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q", f.price)
	}

	return &models.CreateProductRequest{
		Name:        f.name,
		Description: f.description,
		Price:       price,
		Category:    f.category,
		Stock:       f.stock,
	}, nil
}

// updateRequest carries only the flags that were set on the command line.
func (f *productFlags) updateRequest(cmd *cobra.Command) (*models.UpdateProductRequest, error) {
	req := &models.UpdateProductRequest{}
	changed := cmd.Flags().Changed

	if changed("name") {
		req.Name = &f.name
	}
	if changed("description") {
		req.Description = &f.description
	}
	if changed("price") {
		price, err := decimal.NewFromString(f.price)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q", f.price)
		}
		req.Price = &price
	}
	if changed("category") {
		req.Category = &f.category
	}
	if changed("stock") {
		req.Stock = &f.stock
	}

	return req, nil
}

func createCmd(flags *globalFlags) *cobra.Command {
	f := &productFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.createRequest()
			if err != nil {
				return err
			}

			return withRepository(cmd, flags, func(ctx context.Context, a *app) error {
				product, err := a.repo.Create(ctx, req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), product)
			})
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func updateCmd(flags *globalFlags) *cobra.Command {
	f := &productFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			req, err := f.updateRequest(cmd)
			if err != nil {
				return err
			}

			return withRepository(cmd, flags, func(ctx context.Context, a *app) error {
				product, err := a.repo.Update(ctx, id, req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), product)
			})
		},
	}

	f.register(cmd)

	return cmd
}

func deleteCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			return withRepository(cmd, flags, func(ctx context.Context, a *app) error {
				return a.repo.Delete(ctx, id)
			})
		},
	}
}

func duplicateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <id>",
		Short: "Create a copy of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			return withRepository(cmd, flags, func(ctx context.Context, a *app) error {
				original, err := a.repo.Get(ctx, id)
				if err != nil {
					return err
				}

				product, err := a.repo.Create(ctx, inventory.Duplicate(original))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), product)
			})
		},
	}
}
