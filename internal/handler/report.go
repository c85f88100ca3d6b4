package handler

import (
	"net/http"

	"foodtrack/internal/service"
)

func SummaryHandler(reportSvc *service.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := reportSvc.Summary(r.Context())
		if err != nil {
			internalError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}
