package handlers

import "net/http"

const apiPrefix = "/api/v1"

// RegisterRoutes mounts the product gateway on mux. The upstream API's own
// paths are mirrored so clients can point at either.
func RegisterRoutes(mux *http.ServeMux, h *ProductHandler) {
	mux.HandleFunc("GET "+apiPrefix+"/products", h.ListProducts())
	mux.HandleFunc("POST "+apiPrefix+"/products", h.CreateProduct())
	mux.HandleFunc("GET "+apiPrefix+"/products/{id}", h.GetProduct())
	mux.HandleFunc("PATCH "+apiPrefix+"/products/{id}", h.UpdateProduct())
	mux.HandleFunc("DELETE "+apiPrefix+"/products/{id}", h.DeleteProduct())
	mux.HandleFunc("GET "+apiPrefix+"/products/export", h.ExportProducts())
	mux.HandleFunc("POST "+apiPrefix+"/products/import", h.ImportProducts())
	mux.HandleFunc("GET "+apiPrefix+"/categories", h.Categories())
	mux.HandleFunc("GET "+apiPrefix+"/dashboard", h.Dashboard())
	mux.HandleFunc("GET "+apiPrefix+"/mode", h.Mode())
}
