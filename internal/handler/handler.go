// Package handler maps HTTP requests onto the catalog and order services and
// serializes their results. It owns no business logic: validation failures,
// missing entities, and store failures are produced by the services and only
// translated to statuses here.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xenking/storefront-api/internal/domain/order"
	"github.com/xenking/storefront-api/internal/domain/product"
)

// maxBodyBytes caps request bodies; both create endpoints carry small
// payloads.
const maxBodyBytes = 1 << 20

// Handler exposes the REST surface of the storefront.
type Handler struct {
	catalog *product.Service
	orders  *order.Service
}

// NewHandler constructs a Handler with the required domain services.
func NewHandler(catalog *product.Service, orders *order.Service) *Handler {
	return &Handler{
		catalog: catalog,
		orders:  orders,
	}
}

// Routes builds the chi router for the versioned API.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/products", h.createProduct)
		r.Get("/products", h.listProducts)
		r.Post("/orders", h.createOrder)
		r.Get("/orders/{userID}", h.listUserOrders)
	})
	return r
}

func limitBody(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
}
