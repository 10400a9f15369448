package httpadapter

import (
	"net/http"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput), domain.IsKind(err, domain.ErrEmptyCatalog):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrCatalogNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrNothingEnriched), domain.IsKind(err, domain.ErrRunInProgress):
		return http.StatusConflict
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
