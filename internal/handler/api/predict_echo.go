package api

import (
	"errors"
	"net/http"

	"GoldPulse/internal/domain/models"
	"GoldPulse/internal/usecase"
	xhttp "GoldPulse/pkg/http"
	xlogger "GoldPulse/pkg/logger"
	"GoldPulse/pkg/util"

	"github.com/labstack/echo/v4"
)

// PredictEchoHandler exposes the forecast pipeline over HTTP.
type PredictEchoHandler struct {
	logger    *xlogger.Logger
	predictor *usecase.Predictor
	artifacts models.PredictRequest
}

// NewPredictEchoHandler creates the handler. artifacts carries the
// deployment's configured artifact paths, used when the request body
// does not override them.
func NewPredictEchoHandler(logger *xlogger.Logger, predictor *usecase.Predictor, artifacts models.PredictRequest) *PredictEchoHandler {
	return &PredictEchoHandler{logger: logger, predictor: predictor, artifacts: artifacts}
}

func (h *PredictEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)
	e.POST("/api/predict", h.Predict)
}

// Root is the liveness payload listing available endpoints.
func (h *PredictEchoHandler) Root(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"message": "Gold Price Prediction API is running",
		"status":  "healthy",
		"endpoints": map[string]string{
			"predict": "/api/predict",
			"health":  "/health",
			"metrics": "/metrics",
		},
	})
}

// Health is the liveness check for monitoring.
func (h *PredictEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "healthy"})
}

// Predict forecasts tomorrow's closing price. The body is optional;
// when present it may override the artifact paths.
func (h *PredictEchoHandler) Predict(c echo.Context) error {
	// Start from the configured paths; body keys override what they
	// name, and the struct-tag defaults cover anything still empty.
	req := &models.PredictRequest{
		ModelPath:   h.artifacts.ModelPath,
		ScalerXPath: h.artifacts.ScalerXPath,
		ScalerYPath: h.artifacts.ScalerYPath,
	}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.predictor.PredictNext(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("prediction failed", xlogger.Error(err))
		return errorResponse(c, err)
	}

	return xhttp.SuccessResponse(c, &models.PredictResponse{
		CurrentPrice:   util.Round2(res.CurrentPrice),
		PredictedPrice: util.Round2(res.PredictedPrice),
		PriceChange:    util.Round2(res.PriceChange),
		Direction:      res.Direction,
		Status:         "success",
	})
}

// errorResponse maps pipeline failures to HTTP statuses: a missing
// artifact file is the caller's mistake (404); everything else is an
// internal failure (500) carrying the cause.
func errorResponse(c echo.Context, err error) error {
	var artErr *models.ArtifactError
	if errors.As(err, &artErr) && artErr.NotFound {
		return xhttp.NotFoundResponse(c, artErr.Error())
	}

	var fetchErr *models.FetchError
	if errors.As(err, &fetchErr) && fetchErr.Malformed {
		return xhttp.DetailResponse(c, http.StatusInternalServerError,
			fetchErr.Error()+" (the provider may be rate limiting or temporarily unavailable; try again shortly)")
	}

	return xhttp.InternalErrorResponse(c, "Prediction failed: "+err.Error())
}
