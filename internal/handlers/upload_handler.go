package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "investmon/internal/errors"
	"investmon/internal/ingest"
	"investmon/internal/logger"
	"investmon/internal/services"
)

// UploadHandler handles CSV price uploads.
type UploadHandler struct {
	priceService services.PriceServicer
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(priceService services.PriceServicer) *UploadHandler {
	return &UploadHandler{priceService: priceService}
}

// FileError reports a single file that failed to process.
type FileError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// UploadResult summarizes a multi-file upload. Partial success is normal:
// failed files are reported and the rest are processed.
type UploadResult struct {
	ProcessedFiles int         `json:"processed_files"`
	TotalRecords   int         `json:"total_records"`
	Errors         []FileError `json:"errors"`
}

// UploadPrices accepts one or more CSV files under the "files" form field
// and replaces the price store's data for every date present in them.
// Each file is parsed and applied independently; a malformed file is
// reported in the response without failing the batch.
func (h *UploadHandler) UploadPrices(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "multipart form expected"))
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "no files provided"))
		return
	}

	result := UploadResult{Errors: []FileError{}}
	for _, header := range files {
		if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
			result.Errors = append(result.Errors, FileError{Filename: header.Filename, Error: "not a CSV file"})
			continue
		}

		file, err := header.Open()
		if err != nil {
			result.Errors = append(result.Errors, FileError{Filename: header.Filename, Error: err.Error()})
			continue
		}

		records, err := ingest.ParseFile(file)
		_ = file.Close()
		if err != nil {
			logger.Get().Warnw("skipping CSV file", "filename", header.Filename, "error", err.Error())
			result.Errors = append(result.Errors, FileError{Filename: header.Filename, Error: err.Error()})
			continue
		}

		count, err := h.priceService.UpsertDay(records)
		if err != nil {
			result.Errors = append(result.Errors, FileError{Filename: header.Filename, Error: err.Error()})
			continue
		}

		result.ProcessedFiles++
		result.TotalRecords += count
	}

	status := http.StatusOK
	if result.ProcessedFiles == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, result)
}
