package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/inventory-client/internal/api/middleware"
	"github.com/aaravmahajanofficial/inventory-client/internal/errors"
	"github.com/aaravmahajanofficial/inventory-client/internal/interchange"
	"github.com/aaravmahajanofficial/inventory-client/internal/inventory"
	"github.com/aaravmahajanofficial/inventory-client/internal/models"
	"github.com/aaravmahajanofficial/inventory-client/internal/utils/response"
)

const maxImportSize = 10 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ImportResponse struct {
	interchange.ImportSummary
	Message string `json:"message"`
}

type DashboardResponse struct {
	inventory.Summary
	Categories []string    `json:"categories"`
	Mode       models.Mode `json:"mode"`
}

type ModeResponse struct {
	Mode models.Mode `json:"mode"`
}

// ExportProducts godoc
//	@Summary		Export the catalog
//	@Tags			Interchange
//	@Produce		text/csv
//	@Param			format	query	string	false	"csv (default) or xlsx"
//	@Success		200
//	@Failure		400	{object}	response.ErrorResponse	"Unknown format"
//	@Router			/products/export [get]
func (h *ProductHandler) ExportProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		format := r.URL.Query().Get("format")
		if format == "" {
			format = "csv"
		}
		if format != "csv" && format != "xlsx" {
			response.Error(w, errors.BadRequestError(fmt.Sprintf("unsupported export format %q", format)))
			return
		}

		products, ok := h.products(w, r)
		if !ok {
			return
		}

		var buf bytes.Buffer
		var err error
		contentType := "text/csv; charset=utf-8"

		if format == "xlsx" {
			contentType = xlsxContentType
			err = interchange.ExportXLSX(&buf, products)
		} else {
			err = interchange.ExportCSV(&buf, products)
		}

		if err != nil {
			logger.Error("Failed to export products", slog.String("format", format), slog.Any("error", err))
			response.Error(w, errors.InternalError("failed to export products").WithError(err))
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", interchange.FileName(time.Now(), format)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())

		logger.Info("Products exported", slog.String("format", format), slog.Int("count", len(products)))
	}
}

// ImportProducts godoc
//	@Summary		Import products from CSV or XLSX
//	@Description	Every row becomes a create; failing rows are skipped and reported.
//	@Tags			Interchange
//	@Accept			text/csv
//	@Produce		json
//	@Success		200	{object}	handlers.ImportResponse
//	@Failure		400	{object}	response.ErrorResponse	"Empty or unreadable file"
//	@Failure		503	{object}	response.ErrorResponse	"Connectivity not resolved"
//	@Router			/products/import [post]
func (h *ProductHandler) ImportProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if !h.repo.Mode().Resolved() {
			response.Error(w, errors.UnavailableError("connectivity has not been resolved yet"))
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportSize))
		if err != nil {
			response.Error(w, errors.BadRequestError("failed to read import file").WithError(err))
			return
		}

		var items []models.CreateProductRequest
		if r.URL.Query().Get("format") == "xlsx" || strings.Contains(r.Header.Get("Content-Type"), "spreadsheetml") {
			items, err = interchange.ParseXLSX(bytes.NewReader(body))
		} else {
			items, err = interchange.ParseCSV(bytes.NewReader(body))
		}

		if err != nil {
			logger.Warn("Rejected import file", slog.Any("error", err))
			response.Error(w, errors.BadRequestError(rootMessage(err)).WithError(err))
			return
		}

		summary, err := interchange.Import(r.Context(), h.repo, items)
		if err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Products imported", slog.Int("imported", summary.Imported), slog.Int("total", summary.Total))
		response.Success(w, http.StatusOK, ImportResponse{ImportSummary: summary, Message: summary.String()})
	}
}

// rootMessage keeps the user-facing part of a wrapped sentinel error.
func rootMessage(err error) string {
	msg, _, _ := strings.Cut(err.Error(), ": ")
	return msg
}

// Dashboard godoc
//	@Summary		Inventory dashboard figures
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{object}	handlers.DashboardResponse
//	@Router			/dashboard [get]
func (h *ProductHandler) Dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		products, ok := h.products(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, DashboardResponse{
			Summary:    inventory.Summarize(products),
			Categories: inventory.Categories(products),
			Mode:       h.repo.Mode(),
		})
	}
}

// Categories godoc
//	@Summary		Distinct categories
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{array}	string
//	@Router			/categories [get]
func (h *ProductHandler) Categories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		products, ok := h.products(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, inventory.Categories(products))
	}
}

// Mode godoc
//	@Summary		Connectivity mode of this session
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{object}	handlers.ModeResponse
//	@Router			/mode [get]
func (h *ProductHandler) Mode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, ModeResponse{Mode: h.repo.Mode()})
	}
}
