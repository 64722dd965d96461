package adaptor

import (
	"net/http"

	"stay-booking/internal/usecase"
	"stay-booking/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError renders a service error. notFoundStatus lets endpoints
// that report a missing referenced resource as a bad request say so.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string, notFoundStatus int) {
	svcErr := usecase.AsError(err)

	switch svcErr.Kind {
	case usecase.KindValidation:
		log.Warn(operation+" validation failed", zap.Any("errors", svcErr.Fields))
		utils.ResponseBadRequest(w, svcErr.Message, svcErr.Fields)

	case usecase.KindNotFound:
		log.Warn(operation+" failed - not found", zap.String("message", svcErr.Message))
		utils.ResponseJSON(w, notFoundStatus, false, svcErr.Message, nil, nil)

	case usecase.KindConflict:
		log.Warn(operation+" failed - conflict", zap.String("message", svcErr.Message))
		utils.ResponseBadRequest(w, svcErr.Message, nil)

	case usecase.KindUnauthorized:
		log.Warn(operation+" failed - unauthorized", zap.String("message", svcErr.Message))
		utils.ResponseUnauthorized(w, svcErr.Message)

	case usecase.KindPersistence:
		log.Error(operation+" failed - persistence", zap.Error(err))
		utils.ResponseBadRequest(w, svcErr.Message, nil)

	case usecase.KindInternal:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, usecase.MsgInternal)

	default:
		log.Error("Unknown error kind", zap.Error(err), zap.Stringer("kind", svcErr.Kind))
		utils.ResponseInternalError(w, usecase.MsgInternal)
	}
}
