package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/border-traffic-monitor/internal/pkg/errors"
	"github.com/border-traffic-monitor/internal/pkg/utils"
	"github.com/border-traffic-monitor/internal/usecase"
	"github.com/border-traffic-monitor/internal/usecase/dto"
)

const (
	defaultHistoryHours = 24
	defaultPeakDays     = 7
)

// TrafficHandler - HTTP обработчик операций мониторинга
type TrafficHandler struct {
	trafficUC *usecase.TrafficUseCase
	logger    *zap.Logger
}

// NewTrafficHandler создает новый экземпляр TrafficHandler
func NewTrafficHandler(trafficUC *usecase.TrafficUseCase, logger *zap.Logger) *TrafficHandler {
	return &TrafficHandler{
		trafficUC: trafficUC,
		logger:    logger,
	}
}

func routeParams(c *fiber.Ctx) dto.RouteParams {
	return dto.RouteParams{
		CrossingPoint: c.Params("crossingPoint"),
		Direction:     c.Params("direction"),
	}
}

// GetAllStatus godoc
// @Summary Current status of all crossings
// @Description Возвращает последнюю выборку по каждому маршруту; можно отфильтровать по переходу и/или направлению
// @Tags Traffic
// @Produce json
// @Param crossingPoint query string false "woodlands, tuas, second-link"
// @Param direction query string false "malaysia-to-singapore, singapore-to-malaysia"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/traffic/status [get]
func (h *TrafficHandler) GetAllStatus(c *fiber.Ctx) error {
	filter := dto.StatusFilter{
		CrossingPoint: c.Query("crossingPoint"),
		Direction:     c.Query("direction"),
	}

	samples, generation, err := h.trafficUC.GetAllStatus(filter)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}

	return utils.SendSuccess(c, fiber.StatusOK, fiber.Map{
		"timestamp":  time.Now().UTC(),
		"generation": generation,
		"data":       samples,
	})
}

// GetStatus godoc
// @Summary Current status of one route
// @Tags Traffic
// @Produce json
// @Param crossingPoint path string true "Crossing point"
// @Param direction path string true "Direction"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/traffic/status/{crossingPoint}/{direction} [get]
func (h *TrafficHandler) GetStatus(c *fiber.Ctx) error {
	p := routeParams(c)

	sample, err := h.trafficUC.GetStatus(p.CrossingPoint, p.Direction)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}

	return utils.SendSuccess(c, fiber.StatusOK, fiber.Map{"data": sample})
}

// GetHistory godoc
// @Summary Hourly wait-time history
// @Description Синтетическая почасовая история, от старых к новым
// @Tags Traffic
// @Produce json
// @Param crossingPoint path string true "Crossing point"
// @Param direction path string true "Direction"
// @Param hours query int false "Window in hours (0..720)" default(24)
// @Param limit query int false "Keep only the first N points"
// @Success 200 {object} dto.HistoryResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/traffic/history/{crossingPoint}/{direction} [get]
func (h *TrafficHandler) GetHistory(c *fiber.Ctx) error {
	req := dto.HistoryRequest{
		RouteParams: routeParams(c),
		Hours:       c.QueryInt("hours", defaultHistoryHours),
		Limit:       c.QueryInt("limit", 0),
	}

	result, err := h.trafficUC.GetHistory(req)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}

	return utils.SendSuccess(c, fiber.StatusOK, fiber.Map{
		"crossingPoint": result.CrossingPoint,
		"direction":     result.Direction,
		"hours":         result.Hours,
		"count":         result.Count,
		"data":          result.Data,
	})
}

// GetStatistics godoc
// @Summary Wait-time statistics
// @Tags Traffic
// @Produce json
// @Param crossingPoint path string true "Crossing point"
// @Param direction path string true "Direction"
// @Param hours query int false "Window in hours (0..720)" default(24)
// @Success 200 {object} dto.StatisticsResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/traffic/stats/{crossingPoint}/{direction} [get]
func (h *TrafficHandler) GetStatistics(c *fiber.Ctx) error {
	req := dto.StatisticsRequest{
		RouteParams: routeParams(c),
		Hours:       c.QueryInt("hours", defaultHistoryHours),
	}

	result, err := h.trafficUC.GetStatistics(req)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}

	return utils.SendSuccess(c, fiber.StatusOK, fiber.Map{
		"crossingPoint": result.CrossingPoint,
		"direction":     result.Direction,
		"hours":         result.Hours,
		"statistics":    result.Statistics,
	})
}

// GetPeakTimes godoc
// @Summary Peak-time ranking
// @Description До 20 ячеек (день, час) со средним ожиданием выше 20 минут, по убыванию
// @Tags Traffic
// @Produce json
// @Param crossingPoint path string true "Crossing point"
// @Param direction path string true "Direction"
// @Param days query int false "Days to analyze (1..30)" default(7)
// @Success 200 {object} dto.PeakTimesResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/traffic/peak-times/{crossingPoint}/{direction} [get]
func (h *TrafficHandler) GetPeakTimes(c *fiber.Ctx) error {
	req := dto.PeakTimesRequest{
		RouteParams: routeParams(c),
		Days:        c.QueryInt("days", defaultPeakDays),
	}

	result, err := h.trafficUC.GetPeakTimes(req)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}

	return utils.SendSuccess(c, fiber.StatusOK, fiber.Map{
		"crossingPoint": result.CrossingPoint,
		"direction":     result.Direction,
		"days":          result.Days,
		"peakTimes":     result.PeakTimes,
	})
}

// GetPeakAnalysis godoc
// @Summary Latest periodic peak analysis
// @Tags Traffic
// @Produce json
// @Param crossingPoint path string true "Crossing point"
// @Param direction path string true "Direction"
// @Success 200 {object} domain.PeakAnalysis
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/traffic/peak-analysis/{crossingPoint}/{direction} [get]
func (h *TrafficHandler) GetPeakAnalysis(c *fiber.Ctx) error {
	p := routeParams(c)

	analysis, err := h.trafficUC.GetLatestPeakAnalysis(c.UserContext(), p.CrossingPoint, p.Direction)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}

	return utils.SendSuccess(c, fiber.StatusOK, fiber.Map{"data": analysis})
}

// ManualEntry godoc
// @Summary Manual traffic entry
// @Description Ручной ввод выборки для маршрута; сразу виден читателям, but is not pushed to subscribers
// @Tags Traffic
// @Accept json
// @Produce json
// @Param request body dto.ManualEntryRequest true "Sample"
// @Success 201 {object} domain.TrafficSample
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/traffic/manual-entry [post]
func (h *TrafficHandler) ManualEntry(c *fiber.Ctx) error {
	var req dto.ManualEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, h.logger, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	sample, err := h.trafficUC.ManualEntry(req)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}

	return utils.SendSuccess(c, fiber.StatusCreated, fiber.Map{
		"message": "Traffic data added successfully",
		"data":    sample,
	})
}

// DataSources godoc
// @Summary Data source descriptions
// @Tags Traffic
// @Produce json
// @Success 200 {object} map[string]dto.DataSource
// @Router /api/v1/traffic/data-sources [get]
func (h *TrafficHandler) DataSources(c *fiber.Ctx) error {
	return utils.SendSuccess(c, fiber.StatusOK, fiber.Map{"dataSources": h.trafficUC.DataSources()})
}

// Health godoc
// @Summary Engine health
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /api/v1/health [get]
func (h *TrafficHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.trafficUC.Health())
}
