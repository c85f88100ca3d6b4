package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"foodtrack/internal/model"
	"foodtrack/internal/service"
)

const (
	msgCollectionNotFound = "Collection not found"
	msgInvalidCollection  = "Invalid collection details."
)

type createCollectionRequest struct {
	Location string   `json:"location"`
	TypeID   string   `json:"typeId"`
	WeightKg *float64 `json:"weightKg"`
}

func ListWasteTypesHandler(collectionSvc *service.CollectionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, collectionSvc.WasteTypes())
	}
}

func CreateCollectionHandler(collectionSvc *service.CollectionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCollectionRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, msgInvalidCollection)
			return
		}

		in := service.CreateCollectionInput{Location: req.Location, TypeID: req.TypeID}
		if req.WeightKg != nil {
			in.WeightKg = *req.WeightKg
		}

		c, err := collectionSvc.Create(r.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidRequest):
				writeMessage(w, http.StatusBadRequest, msgInvalidCollection)
			default:
				internalError(w, r, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, c)
	}
}

func ListCollectionsHandler(collectionSvc *service.CollectionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := collectionSvc.List(r.Context())
		if err != nil {
			internalError(w, r, err)
			return
		}
		if list == nil {
			list = []model.Collection{}
		}

		writeJSON(w, http.StatusOK, list)
	}
}

func MarkCollectedHandler(collectionSvc *service.CollectionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := collectionSvc.MarkCollected(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				writeMessage(w, http.StatusNotFound, msgCollectionNotFound)
			default:
				internalError(w, r, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, c)
	}
}
