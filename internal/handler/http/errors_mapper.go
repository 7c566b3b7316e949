package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// Error kinds written into [models.ErrorResponse.Kind].
const (
	kindUnauthorized           = "unauthorized"
	kindMasterPasswordRequired = "master_password_required"
	kindNotFound               = "not_found"
	kindConflict               = "conflict"
	kindInvalidInput           = "invalid_input"
	kindInternal               = "internal"
)

type errorKind struct {
	kind    string
	status  int
	message string
}

var internalErrorKind = errorKind{kindInternal, http.StatusInternalServerError, app.MsgInternalServerError}

var errorStatusMap = map[error]errorKind{
	service.ErrUnauthorized:           {kindUnauthorized, http.StatusUnauthorized, app.MsgUnauthorized},
	service.ErrMasterPasswordRequired: {kindMasterPasswordRequired, http.StatusForbidden, app.MsgMasterPasswordRequired},
	service.ErrNotFound:               {kindNotFound, http.StatusNotFound, app.MsgNotFound},
	service.ErrTenantMismatch:         {kindNotFound, http.StatusNotFound, app.MsgNotFound},
	service.ErrConflict:               {kindConflict, http.StatusConflict, app.MsgEmailAlreadyRegistered},
	service.ErrInvalidInput:           {kindInvalidInput, http.StatusBadRequest, app.MsgInvalidDataProvided},
	service.ErrInternal:               internalErrorKind,

	ErrMissingToken:               {kindUnauthorized, http.StatusUnauthorized, app.MsgUnauthorized},
	ErrInvalidAuthorizationHeader: {kindUnauthorized, http.StatusUnauthorized, app.MsgUnauthorized},
	ErrInvalidEntryID:             {kindInvalidInput, http.StatusBadRequest, app.MsgInvalidDataProvided},
	ErrInvalidJSON:                {kindInvalidInput, http.StatusBadRequest, app.MsgInvalidDataProvided},
}

func kindFromError(err error) errorKind {
	for target, kind := range errorStatusMap {
		if errors.Is(err, target) {
			return kind
		}
	}
	return internalErrorKind
}

// writeError logs err and writes its {kind, message} body. Internal details
// never reach the response.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeErrorMessage(w, r, err, "")
}

// writeErrorMessage is writeError with the default message of the error kind
// replaced by message when it is not empty.
func writeErrorMessage(w http.ResponseWriter, r *http.Request, err error, message string) {
	kind := kindFromError(err)
	if message == "" {
		message = kind.message
	}

	log := logger.FromRequest(r)
	if kind.status >= http.StatusInternalServerError {
		log.Err(err).Str("kind", kind.kind).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("kind", kind.kind).Msg("request rejected")
	}

	utils.WriteJSON(w, models.ErrorResponse{Kind: kind.kind, Message: message}, kind.status)
}
