package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"foodtrack/internal/model"
	"foodtrack/internal/service"
)

const (
	msgOrderNotFound      = "Order not found"
	msgMissingOrderFields = "Missing order details."
	msgOrderPlaced        = "Order successfully placed"
)

type placeOrderRequest struct {
	Items        []json.RawMessage `json:"items"`
	Total        *float64          `json:"total"`
	RestaurantID *int64            `json:"restaurantId"`
}

type placeOrderResponse struct {
	Message string       `json:"message"`
	OrderID int64        `json:"orderId"`
	Status  model.Status `json:"status"`
}

type orderResponse struct {
	ID     int64        `json:"id"`
	Status model.Status `json:"status"`
	Total  float64      `json:"total"`
}

type advanceStatusResponse struct {
	ID        int64        `json:"id"`
	NewStatus model.Status `json:"newStatus"`
}

func PlaceOrderHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req placeOrderRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, msgMissingOrderFields)
			return
		}

		in := service.PlaceOrderInput{Items: req.Items}
		if req.Total != nil {
			in.Total = *req.Total
		}
		if req.RestaurantID != nil {
			in.RestaurantID = *req.RestaurantID
		}

		order, err := orderSvc.Place(r.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidRequest):
				writeMessage(w, http.StatusBadRequest, msgMissingOrderFields)
			default:
				internalError(w, r, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, placeOrderResponse{
			Message: msgOrderPlaced,
			OrderID: order.ID,
			Status:  order.Status,
		})
	}
}

func GetOrderHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeMessage(w, http.StatusNotFound, msgOrderNotFound)
			return
		}

		order, err := orderSvc.Get(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				writeMessage(w, http.StatusNotFound, msgOrderNotFound)
			default:
				internalError(w, r, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, orderResponse{ID: order.ID, Status: order.Status, Total: order.Total})
	}
}

// AdvanceStatusHandler simulates fulfillment progress; any caller may
// advance any order.
func AdvanceStatusHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeMessage(w, http.StatusNotFound, msgOrderNotFound)
			return
		}

		order, err := orderSvc.AdvanceStatus(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				writeMessage(w, http.StatusNotFound, msgOrderNotFound)
			default:
				internalError(w, r, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, advanceStatusResponse{ID: order.ID, NewStatus: order.Status})
	}
}
