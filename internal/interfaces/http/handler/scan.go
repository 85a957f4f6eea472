package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/drumflow/backend/internal/application/scanning"
	"github.com/drumflow/backend/internal/domain/inventory"
	"github.com/drumflow/backend/internal/infrastructure/logger"
	"github.com/drumflow/backend/internal/interfaces/http/dto"
)

// ScanHandler handles barcode scan submissions.
//
// Unlike the rest of the API this endpoint speaks the legacy wire
// dialect the handheld scanner firmware was built against: errors are a
// bare {"message": ...} object and successes are {"success": true,
// "data": {...}}. These shapes are additive only: new fields may be
// added, but renaming or removing one breaks deployed scanners.
type ScanHandler struct {
	BaseHandler
	scanService *scanning.ScanService
}

// NewScanHandler creates a new ScanHandler
func NewScanHandler(scanService *scanning.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// Scan handles POST /api/v1/scans/drum
func (h *ScanHandler) Scan(c *gin.Context) {
	var req scanning.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ScanErrorResponse{Message: bindFailureMessage(err)})
		return
	}

	result, err := h.scanService.Scan(c.Request.Context(), req)
	if err != nil {
		h.scanError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ScanAcceptedResponse{Success: true, Data: result})
}

// History handles GET /api/v1/drums/:id/history
func (h *ScanHandler) History(c *gin.Context) {
	var uri struct {
		ID int64 `uri:"id" binding:"required,min=1"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid drum ID")
		return
	}

	history, err := h.scanService.History(c.Request.Context(), uri.ID)
	if err != nil {
		var notFound *inventory.DrumNotFoundError
		if errors.As(err, &notFound) {
			h.NotFound(c, notFound.Error())
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}

// bindFailureMessage distinguishes a well-formed payload whose barcode
// fails the label format from a structurally broken one. Structural
// failures take precedence: a missing field reads as a firmware bug,
// not a bad label.
func bindFailureMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		for _, fe := range verrs {
			if fe.Tag() != "barcode" {
				return "Invalid request data format"
			}
		}
		return "Invalid barcode format"
	}
	return "Invalid request data format"
}

// scanError maps the structured scan errors onto the legacy status codes
// and {"message"} body the scanner firmware expects.
func (h *ScanHandler) scanError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var (
		invalidBarcode  *inventory.InvalidBarcodeError
		notFound        *inventory.DrumNotFoundError
		duplicate       *inventory.DuplicateScanError
		unhandledStatus *inventory.UnhandledStatusError
		verifyFailed    *inventory.TransitionVerificationError
		inProgress      *inventory.ScanInProgressError
	)

	switch {
	case errors.As(err, &invalidBarcode):
		status = http.StatusBadRequest
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &duplicate):
		status = http.StatusTooManyRequests
	case errors.As(err, &unhandledStatus):
		status = http.StatusBadRequest
	case errors.As(err, &verifyFailed):
		c.JSON(http.StatusInternalServerError, dto.ScanAcceptedResponse{
			Success: false,
			Data: dto.ScanVerifyFailure{
				DrumID:    verifyFailed.DrumID,
				OldStatus: string(verifyFailed.OldStatus),
				Message:   verifyFailed.Error(),
			},
		})
		return
	case errors.As(err, &inProgress):
		status = http.StatusConflict
	default:
		logger.FromGin(c).Error("scan failed", zap.Error(err))
		c.JSON(status, dto.ScanErrorResponse{Message: "Internal server error", Error: err.Error()})
		return
	}

	c.JSON(status, dto.ScanErrorResponse{Message: err.Error()})
}
