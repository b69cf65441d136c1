package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mkostiv/fitjournal/internal/domain"
	"mkostiv/fitjournal/internal/engine"
	"mkostiv/fitjournal/internal/service"
)

// MetricsHandler holds the metrics service dependency.
type MetricsHandler struct {
	metricsService service.MetricsService
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(metricsService service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

// --- DTOs for API (Data Transfer Objects) ---

// SeriesResponse carries a chart series for one metric or exercise.
type SeriesResponse struct {
	Metric string         `json:"metric"`
	Points []engine.Point `json:"points"`
}

// ValueResponse carries a single resolved value; null means no data.
type ValueResponse struct {
	Metric string   `json:"metric"`
	Value  *float64 `json:"value"`
}

// parseWindow reads ?days=N|all and ?end=YYYY-MM-DD into a series
// window. Defaults: 30 days ending today.
func parseWindow(c *gin.Context) (engine.SeriesWindow, error) {
	window := engine.SeriesWindow{End: time.Now().UTC(), Days: 30}

	if raw := c.Query("days"); raw != "" {
		if raw == "all" {
			window.AllTime = true
		} else {
			days, err := strconv.Atoi(raw)
			if err != nil || days <= 0 {
				return window, errors.New("days must be a positive number or \"all\"")
			}
			window.Days = days
		}
	}
	if raw := c.Query("end"); raw != "" {
		end, err := time.Parse(domain.DateLayout, raw)
		if err != nil {
			return window, errors.New("end must be YYYY-MM-DD")
		}
		window.End = end
	}
	return window, nil
}

// --- Handler Methods ---

// GetSeries charts one metric over the requested window.
func (h *MetricsHandler) GetSeries(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	metric := c.Param("metric")
	points, err := h.metricsService.Series(c.Request.Context(), metric, window)
	if err != nil {
		if errors.Is(err, service.ErrUnknownMetric) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to build series")
		return
	}
	c.JSON(http.StatusOK, SeriesResponse{Metric: metric, Points: points})
}

// GetExerciseSeries charts average load per rep for a named exercise.
func (h *MetricsHandler) GetExerciseSeries(c *gin.Context) {
	window, err := parseWindow(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	exercise := c.Param("name")
	points, err := h.metricsService.ExerciseSeries(c.Request.Context(), exercise, window)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, SeriesResponse{Metric: exercise, Points: points})
}

// GetLatest returns the most recent value for a metric.
func (h *MetricsHandler) GetLatest(c *gin.Context) {
	metric := c.Param("metric")
	value, err := h.metricsService.LatestValue(c.Request.Context(), metric)
	if err != nil {
		if errors.Is(err, service.ErrUnknownMetric) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve metric")
		return
	}
	c.JSON(http.StatusOK, ValueResponse{Metric: metric, Value: value})
}

// GetAverage returns the rolling average over ?days (default 30).
func (h *MetricsHandler) GetAverage(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			abortWithError(c, http.StatusBadRequest, "days must be a positive number")
			return
		}
		days = parsed
	}

	metric := c.Param("metric")
	value, err := h.metricsService.RollingAverage(c.Request.Context(), metric, days)
	if err != nil {
		if errors.Is(err, service.ErrUnknownMetric) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to average metric")
		return
	}
	c.JSON(http.StatusOK, ValueResponse{Metric: metric, Value: value})
}
