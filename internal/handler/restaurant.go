package handler

import (
	"errors"
	"net/http"

	"foodtrack/internal/service"
)

const msgRestaurantNotFound = "Restaurant not found"

func ListRestaurantsHandler(catalogSvc *service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurants, err := catalogSvc.ListRestaurants(r.Context())
		if err != nil {
			internalError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, restaurants)
	}
}

func GetMenuHandler(catalogSvc *service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeMessage(w, http.StatusNotFound, msgRestaurantNotFound)
			return
		}

		menu, err := catalogSvc.GetMenu(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				writeMessage(w, http.StatusNotFound, msgRestaurantNotFound)
			default:
				internalError(w, r, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, menu)
	}
}
