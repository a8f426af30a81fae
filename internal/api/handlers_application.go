// handlers_application.go - Job application submission handler
package api

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/job-intake/backend/internal/metrics"
	"github.com/job-intake/backend/internal/models"
	"github.com/job-intake/backend/internal/upload"
	"github.com/labstack/echo/v4"
)

// ApplicationHandlerImpl implements the ApplicationHandler interface
type ApplicationHandlerImpl struct {
	uploads *upload.Manager
}

// NewApplicationHandler creates a new application handler instance
func NewApplicationHandler(uploads *upload.Manager) ApplicationHandler {
	return &ApplicationHandlerImpl{
		uploads: uploads,
	}
}

// HandleSubmitApplication validates and stages the uploaded files, then
// echoes the applicant fields and the staged file metadata. A body that is
// not multipart carries no files; its fields are read from JSON when the
// body is JSON and the response has no files key.
func (h *ApplicationHandlerImpl) HandleSubmitApplication(c echo.Context) error {
	mediaType := requestMediaType(c.Request())
	if !strings.HasPrefix(mediaType, "multipart/") {
		return h.submitFields(c, mediaType)
	}

	result, err := h.uploads.Process(c.Request())
	if err != nil {
		apiErr := toAPIError(err)
		metrics.ObserveRejected(apiErr.Code)
		return apiErr
	}

	metrics.ObserveAccepted(result.Files)

	return respond(c, http.StatusOK, models.ApplicationResponse{
		OK:    true,
		Data:  models.SubmissionFromForm(result.Fields),
		Files: result.Files,
	})
}

func (h *ApplicationHandlerImpl) submitFields(c echo.Context, mediaType string) error {
	var data models.ApplicationSubmission
	if mediaType == echo.MIMEApplicationJSON {
		if err := c.Bind(&data); err != nil {
			apiErr := NewBadRequestError("invalid JSON body", err)
			if errors.Is(err, echo.ErrStatusRequestEntityTooLarge) {
				apiErr = toAPIError(echo.ErrStatusRequestEntityTooLarge)
			}
			metrics.ObserveRejected(apiErr.Code)
			return apiErr
		}
	}

	metrics.ObserveAccepted(nil)

	return respond(c, http.StatusOK, models.ApplicationFieldsResponse{
		OK:   true,
		Data: data,
	})
}

func requestMediaType(r *http.Request) string {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get(echo.HeaderContentType))
	if err != nil {
		return ""
	}
	return mediaType
}
