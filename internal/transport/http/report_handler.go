package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "ventascli/internal/errors"
	"ventascli/pkg/contracts/domain"
)

// ReportHandler handles report pipeline HTTP requests with RFC 7807 errors.
type ReportHandler struct {
	service      ReportServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewReportHandler creates a report handler backed by the given service.
func NewReportHandler(service ReportServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ReportHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "report_handler")),
		errorHandler: errorHandler,
		validate:     v,
	}
}

// Routes returns the report routes.
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/options", h.GetOptions)
	r.Post("/", h.RunReport)
	r.Post("/export", h.ExportReport)

	return r
}

// reportRequest is the POST body shared by the run and export endpoints.
// The selection axes mirror the dashboard multi-selects; product codes
// may stay empty, which means no restriction on that axis.
type reportRequest struct {
	Years           []int    `json:"years" validate:"required,min=1,dive,gte=1900,lte=2200"`
	Months          []string `json:"months" validate:"required,min=1,dive,required"`
	ProductCodes    []string `json:"product_codes" validate:"omitempty,dive,required"`
	CustomerClasses []string `json:"customer_classes" validate:"required,min=1,dive,required"`
}

func (req *reportRequest) selection() domain.FilterSelection {
	return domain.FilterSelection{
		Years:           req.Years,
		Months:          req.Months,
		ProductCodes:    req.ProductCodes,
		CustomerClasses: req.CustomerClasses,
	}
}

// GetOptions handles GET /api/report/options.
func (h *ReportHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	h.logger.InfoContext(r.Context(), "fetching filter options",
		slog.String("request_id", reqID),
	)

	options, err := h.service.Options(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   options,
	})
}

// RunReport handles POST /api/report.
func (h *ReportHandler) RunReport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	req, ok := h.decodeSelection(w, r)
	if !ok {
		return
	}

	h.logger.InfoContext(r.Context(), "running report",
		slog.String("request_id", reqID),
		slog.Any("years", req.Years),
		slog.Any("months", req.Months),
		slog.Int("product_codes", len(req.ProductCodes)),
		slog.Any("customer_classes", req.CustomerClasses),
	)

	report, err := h.service.Run(r.Context(), req.selection())
	if err != nil {
		// An empty selection is a valid outcome, not a failure.
		if apierrors.IsEmptyResult(err) {
			h.renderNoData(w, r, err)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   report,
		"count":  len(report.Rows),
	})
}

// ExportReport handles POST /api/report/export. The response body is the
// CSV file itself; the suggested filename travels in Content-Disposition.
func (h *ReportHandler) ExportReport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	req, ok := h.decodeSelection(w, r)
	if !ok {
		return
	}

	data, filename, err := h.service.Export(r.Context(), req.selection())
	if err != nil {
		if apierrors.IsEmptyResult(err) {
			h.renderNoData(w, r, err)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "exporting report",
		slog.String("request_id", reqID),
		slog.String("filename", filename),
		slog.Int("bytes", len(data)),
	)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// decodeSelection parses and validates the shared selection body. On
// failure it writes the error response and returns ok=false.
func (h *ReportHandler) decodeSelection(w http.ResponseWriter, r *http.Request) (*reportRequest, bool) {
	var req reportRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewValidationError("request body is not valid JSON"))
		return nil, false
	}

	if err := h.validate.Struct(&req); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
			first := fieldErrors[0]
			h.errorHandler.HandleError(w, r, apierrors.NewValidationError(
				fmt.Sprintf("%s failed %s validation", first.Field(), first.Tag())))
			return nil, false
		}
		h.errorHandler.HandleError(w, r, apierrors.NewValidationError(err.Error()))
		return nil, false
	}

	return &req, true
}

// renderNoData responds to an empty filter result with a neutral no-data
// payload rather than a problem document.
func (h *ReportHandler) renderNoData(w http.ResponseWriter, r *http.Request, err error) {
	stage := ""
	var appErr *apierrors.AppError
	if errors.As(err, &appErr) {
		if s, found := appErr.Context["stage"].(string); found {
			stage = s
		}
	}

	h.logger.InfoContext(r.Context(), "selection matched no rows",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("stage", stage),
	)

	render.JSON(w, r, map[string]interface{}{
		"status":  "no_data",
		"message": "No hay datos para los filtros seleccionados.",
		"stage":   stage,
	})
}
