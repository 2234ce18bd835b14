package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/inventory-client/internal/interchange"
	"github.com/aaravmahajanofficial/inventory-client/internal/inventory"
	"github.com/aaravmahajanofficial/inventory-client/internal/models"
	"github.com/spf13/cobra"
)

func importCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Create products from a CSV or XLSX file",
		Long: `Each data row becomes a product. Rows that fail validation are skipped
and listed; the rest are created in file order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}

			var items []models.CreateProductRequest
			if strings.EqualFold(filepath.Ext(args[0]), ".xlsx") {
				items, err = interchange.ParseXLSX(bytes.NewReader(data))
			} else {
				items, err = interchange.ParseCSV(bytes.NewReader(data))
			}
			if err != nil {
				return err
			}

			return withRepository(cmd, flags, func(ctx context.Context, a *app) error {
				summary, err := interchange.Import(ctx, a.repo, items)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, summary.String())
				for _, failed := range summary.Failed {
					fmt.Fprintf(out, "  row %d: %s\n", failed.Row, failed.Err)
				}

				return nil
			})
		},
	}
}

func exportCmd(flags *globalFlags) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog to CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "csv" && format != "xlsx" {
				return fmt.Errorf("unsupported export format %q", format)
			}

			return withRepository(cmd, flags, func(ctx context.Context, a *app) error {
				products, err := loadProducts(ctx, a)
				if err != nil {
					return err
				}

				if output == "" {
					output = interchange.FileName(time.Now(), format)
				}

				var w io.Writer = cmd.OutOrStdout()
				if output != "-" {
					f, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("create export file: %w", err)
					}
					defer f.Close()
					w = f
				}

				if format == "xlsx" {
					err = interchange.ExportXLSX(w, products)
				} else {
					err = interchange.ExportCSV(w, products)
				}
				if err != nil {
					return err
				}

				slog.Info("Products exported", slog.String("file", output), slog.Int("count", len(products)))

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "csv or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, - for stdout (default inventario_<date>.<format>)")

	return cmd
}

func statsCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd, flags, func(ctx context.Context, a *app) error {
				products, err := loadProducts(ctx, a)
				if err != nil {
					return err
				}

				summary := inventory.Summarize(products)
				out := cmd.OutOrStdout()

				if asJSON {
					return printJSON(out, summary)
				}

				fmt.Fprintf(out, "Mode:            %s\n", a.repo.Mode())
				fmt.Fprintf(out, "Products:        %d\n", summary.TotalProducts)
				fmt.Fprintf(out, "Inventory value: %s\n", summary.TotalValue.StringFixed(2))
				fmt.Fprintf(out, "Low stock:       %d\n", summary.LowStockCount)

				fmt.Fprintln(out, "\nTop categories:")
				for _, c := range summary.TopCategories {
					fmt.Fprintf(out, "  %-20s %d\n", c.Name, c.Count)
				}

				if len(summary.LowStockSamples) > 0 {
					fmt.Fprintln(out, "\nLow stock products:")
					return printTable(out, summary.LowStockSamples)
				}

				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}
