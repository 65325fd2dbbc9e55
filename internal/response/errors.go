package response

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/post-service/internal/service"
)

// ServiceError writes the envelope for an error returned by the service
// layer. Errors without a Kind are logged and reported as a bare 500.
func ServiceError(w http.ResponseWriter, log *logrus.Logger, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		log.Errorf("Internal error: %v", err)
		Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	status := StatusFor(se.Kind)
	switch status {
	case http.StatusServiceUnavailable:
		log.Warnf("Storage unavailable: %v", err)
		w.Header().Set("Retry-After", "1")
	case http.StatusInternalServerError:
		log.Errorf("Internal error: %v", err)
		Error(w, status, "Internal server error")
		return
	}
	Error(w, status, se.Message)
}

// StatusFor maps an error kind onto an HTTP status
func StatusFor(kind service.Kind) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindInvalidCredentials, service.KindInvalidToken:
		return http.StatusUnauthorized
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	case service.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
