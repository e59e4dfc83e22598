package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/userorders-backend/internal/models"
)

type ordersData struct {
	Orders []models.Order `json:"orders"`
}

type totalPriceData struct {
	TotalPrice string `json:"totalPrice"`
}

// AddOrder handles POST /api/users/{userId}/orders.
func (h *UserHandler) AddOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderInput
	if !decode(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	order, err := h.svc.AddOrder(ctx, chi.URLParam(r, "userId"), req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error creating order")
		return
	}
	writeSuccess(w, http.StatusOK, "Order created successfully!", order)
}

// ListOrders handles GET /api/users/{userId}/orders.
func (h *UserHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	orders, err := h.svc.ListOrders(ctx, chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Internal server error")
		return
	}
	if len(orders) == 0 {
		writeSuccess(w, http.StatusOK, "No orders found for the user", ordersData{Orders: []models.Order{}})
		return
	}
	writeSuccess(w, http.StatusOK, "Orders fetched successfully!", ordersData{Orders: orders})
}

// SumOrderTotal handles GET /api/users/{userId}/orders/total-price.
func (h *UserHandler) SumOrderTotal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	total, err := h.svc.SumOrderTotal(ctx, chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Internal server error")
		return
	}
	writeSuccess(w, http.StatusOK, "Total price calculated successfully!", totalPriceData{TotalPrice: total})
}
