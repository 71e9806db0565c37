// internal/handlers/common.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/marketflow-backend/internal/i18n"
	"github.com/javajoker/marketflow-backend/internal/middleware"
	"github.com/javajoker/marketflow-backend/internal/services"
	"github.com/javajoker/marketflow-backend/internal/utils"
)

// workspace returns the caller's workspace or writes a 500 when the session
// middleware did not run.
func workspace(c *gin.Context) (*services.Workspace, bool) {
	ws := middleware.CurrentWorkspace(c)
	if ws == nil {
		utils.InternalErrorResponse(c, "")
		return nil, false
	}
	return ws, true
}

// bindJSON binds and validates the request body, writing the error response
// itself. Oversized bodies get a 413.
func bindJSON(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)

	if err := c.ShouldBindJSON(req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			utils.PayloadTooLargeResponse(c)
			return false
		}
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

func mediaErrorResponse(c *gin.Context, err error, options services.UploadOptions) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrFileTooLarge):
		limit := strconv.FormatInt(options.MaxSize/(1024*1024), 10)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileTooLarge, limit), err.Error())
	case errors.Is(err, services.ErrNotImage):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileNotImage), err.Error())
	case errors.Is(err, services.ErrTypeNotAllowed):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileTypeRejected), err.Error())
	default:
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
	}
}
