package usecase

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/border-traffic-monitor/internal/broadcast"
	"github.com/border-traffic-monitor/internal/domain"
	"github.com/border-traffic-monitor/internal/domain/repository"
	"github.com/border-traffic-monitor/internal/pkg/errors"
	"github.com/border-traffic-monitor/internal/pkg/validator"
	"github.com/border-traffic-monitor/internal/simulation"
	"github.com/border-traffic-monitor/internal/usecase/dto"
)

const (
	defaultManualVehicleType = "all"
	defaultManualConfidence  = 0.9
)

// TrafficAnalyzer - история, статистика и пики по маршруту
type TrafficAnalyzer interface {
	History(route domain.Route, hours int) ([]domain.TrafficSample, error)
	Stats(route domain.Route, hours int) (*domain.Statistics, error)
	PeakTimes(route domain.Route, days int) ([]domain.PeakTimeEntry, error)
}

// SampleDecorator supplies the synthetic side fields of a manually entered sample.
type SampleDecorator interface {
	RandomWeather() domain.Weather
	LaneCount() int
	ProcessingTime() float64
}

// TrafficUseCase - операции движка мониторинга
type TrafficUseCase struct {
	store     repository.StateRepository
	analyzer  TrafficAnalyzer
	decorator SampleDecorator
	hub       *broadcast.Hub
	cache     repository.AnalysisCache
	now       func() time.Time
	logger    *zap.Logger
}

// NewTrafficUseCase создает новый экземпляр TrafficUseCase. now defaults to time.Now.
func NewTrafficUseCase(
	store repository.StateRepository,
	analyzer TrafficAnalyzer,
	decorator SampleDecorator,
	hub *broadcast.Hub,
	cache repository.AnalysisCache,
	now func() time.Time,
	logger *zap.Logger,
) *TrafficUseCase {
	if now == nil {
		now = time.Now
	}
	return &TrafficUseCase{
		store:     store,
		analyzer:  analyzer,
		decorator: decorator,
		hub:       hub,
		cache:     cache,
		now:       now,
		logger:    logger,
	}
}

func routeError(err error) error {
	return errors.ErrUnknownRoute.Wrap(err)
}

// validateQuery maps struct validation failures of query parameters to INVALID_REQUEST.
func validateQuery(req interface{}) error {
	if err := validator.Validate(req); err != nil {
		return errors.ErrInvalidRequest.WithDetails(validator.FieldErrors(err)).Wrap(err)
	}
	return nil
}

func (uc *TrafficUseCase) parseRoute(crossing, direction string) (domain.Route, error) {
	route, err := domain.ParseRoute(crossing, direction)
	if err != nil {
		return domain.Route{}, routeError(err)
	}
	return route, nil
}

// GetAllStatus возвращает все текущие выборки, optionally filtered by crossing and/or direction,
// together with the generation they were read from.
func (uc *TrafficUseCase) GetAllStatus(filter dto.StatusFilter) ([]domain.TrafficSample, uint64, error) {
	var (
		crossing  domain.CrossingPoint
		direction domain.Direction
		err       error
	)
	if filter.CrossingPoint != "" {
		if crossing, err = domain.ParseCrossingPoint(filter.CrossingPoint); err != nil {
			return nil, 0, routeError(err)
		}
	}
	if filter.Direction != "" {
		if direction, err = domain.ParseDirection(filter.Direction); err != nil {
			return nil, 0, routeError(err)
		}
	}

	snap := uc.store.Snapshot()
	result := make([]domain.TrafficSample, 0, len(snap.Samples))
	for _, s := range snap.Samples {
		if crossing != "" && s.CrossingPoint != crossing {
			continue
		}
		if direction != "" && s.Direction != direction {
			continue
		}
		result = append(result, s)
	}
	return result, snap.Generation, nil
}

// GetStatus возвращает текущую выборку маршрута
func (uc *TrafficUseCase) GetStatus(crossing, direction string) (*domain.TrafficSample, error) {
	route, err := uc.parseRoute(crossing, direction)
	if err != nil {
		return nil, err
	}

	sample, ok := uc.store.Current(route)
	if !ok {
		return nil, errors.ErrUnknownRoute.WithDetails(map[string]interface{}{"route": route.String()})
	}
	return sample, nil
}

// GetHistory - синтетическая история за последние hours часов, oldest first, truncated to limit when limit > 0.
func (uc *TrafficUseCase) GetHistory(req dto.HistoryRequest) (*dto.HistoryResponse, error) {
	if err := validateQuery(&req); err != nil {
		return nil, err
	}

	route, err := uc.parseRoute(req.CrossingPoint, req.Direction)
	if err != nil {
		return nil, err
	}

	series, err := uc.analyzer.History(route, req.Hours)
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithMessage("%s", err.Error())
	}
	if req.Limit > 0 && len(series) > req.Limit {
		series = series[:req.Limit]
	}

	return &dto.HistoryResponse{
		CrossingPoint: route.CrossingPoint,
		Direction:     route.Direction,
		Hours:         req.Hours,
		Count:         len(series),
		Data:          series,
	}, nil
}

// GetStatistics - агрегаты по окну истории
func (uc *TrafficUseCase) GetStatistics(req dto.StatisticsRequest) (*dto.StatisticsResponse, error) {
	if err := validateQuery(&req); err != nil {
		return nil, err
	}

	route, err := uc.parseRoute(req.CrossingPoint, req.Direction)
	if err != nil {
		return nil, err
	}

	stats, err := uc.analyzer.Stats(route, req.Hours)
	if stderrors.Is(err, simulation.ErrNoSamples) {
		return nil, errors.ErrNoData.Wrap(err)
	}
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithMessage("%s", err.Error())
	}

	return &dto.StatisticsResponse{
		CrossingPoint: route.CrossingPoint,
		Direction:     route.Direction,
		Hours:         req.Hours,
		Statistics:    stats,
	}, nil
}

// GetPeakTimes - ранжирование пиков за days дней
func (uc *TrafficUseCase) GetPeakTimes(req dto.PeakTimesRequest) (*dto.PeakTimesResponse, error) {
	if err := validateQuery(&req); err != nil {
		return nil, err
	}

	route, err := uc.parseRoute(req.CrossingPoint, req.Direction)
	if err != nil {
		return nil, err
	}

	entries, err := uc.analyzer.PeakTimes(route, req.Days)
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithMessage("%s", err.Error())
	}

	return &dto.PeakTimesResponse{
		CrossingPoint: route.CrossingPoint,
		Direction:     route.Direction,
		Days:          req.Days,
		PeakTimes:     entries,
	}, nil
}

// GetLatestPeakAnalysis возвращает результат последнего периодического анализа
func (uc *TrafficUseCase) GetLatestPeakAnalysis(ctx context.Context, crossing, direction string) (*domain.PeakAnalysis, error) {
	route, err := uc.parseRoute(crossing, direction)
	if err != nil {
		return nil, err
	}

	analysis, err := uc.cache.GetPeakAnalysis(ctx, route)
	if err != nil {
		uc.logger.Error("Failed to read peak analysis", zap.String("route", route.String()), zap.Error(err))
		return nil, errors.ErrInternalServer.Wrap(err)
	}
	if analysis == nil {
		return nil, errors.ErrNoData.WithMessage("No peak analysis available yet for %s", route)
	}
	return analysis, nil
}

// ManualEntry stores an operator-supplied sample for one route. The stored sample becomes visible
// to readers immediately but is not pushed to subscribers; the next refresh supersedes it.
func (uc *TrafficUseCase) ManualEntry(req dto.ManualEntryRequest) (*domain.TrafficSample, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, errors.ErrValidation.WithDetails(validator.FieldErrors(err)).Wrap(err)
	}

	route, err := uc.parseRoute(req.CrossingPoint, req.Direction)
	if err != nil {
		return nil, err
	}

	vehicleType := req.VehicleType
	if vehicleType == "" {
		vehicleType = defaultManualVehicleType
	}
	source := req.DataSource
	if source == "" {
		source = domain.SourceManual
	}
	confidence := defaultManualConfidence
	if req.Confidence != nil {
		confidence = *req.Confidence
	}

	at := uc.now()
	weather := uc.decorator.RandomWeather()
	sample := domain.TrafficSample{
		ID:              uuid.New(),
		CrossingPoint:   route.CrossingPoint,
		Direction:       route.Direction,
		WaitTime:        *req.WaitTime,
		CongestionLevel: domain.CongestionLevel(req.CongestionLevel),
		VehicleType:     vehicleType,
		DataSource:      source,
		Confidence:      confidence,
		Weather:         &weather,
		SpecialEvents:   []domain.SpecialEvent{},
		Timestamp:       at,
		Metadata: &domain.SampleMetadata{
			LaneCount:      uc.decorator.LaneCount(),
			ProcessingTime: uc.decorator.ProcessingTime(),
			RawData:        map[string]any{"manual": true},
		},
	}

	snap, err := uc.store.Put(sample, at)
	if err != nil {
		return nil, errors.ErrInternalServer.Wrap(err)
	}

	uc.logger.Info("Manual traffic entry stored",
		zap.String("route", route.String()),
		zap.Int("wait_time", sample.WaitTime),
		zap.Uint64("generation", snap.Generation))
	return &sample, nil
}

// DataSources - описание источников данных
func (uc *TrafficUseCase) DataSources() map[string]dto.DataSource {
	return map[string]dto.DataSource{
		"googleMaps": {
			Name:        "Google Maps",
			Enabled:     true,
			Description: "Simulated traffic data from Google Maps API",
		},
		"waze": {
			Name:        "Waze",
			Enabled:     true,
			Description: "Simulated community-driven traffic information",
		},
		"ltaDatamall": {
			Name:        "LTA DataMall",
			Enabled:     true,
			Description: "Simulated official Singapore transport data",
		},
		"manual": {
			Name:        "Manual Entry",
			Enabled:     true,
			Description: "Manual traffic data entry for testing",
		},
	}
}

// Subscribe регистрирует подписчика, optionally scoped to one crossing ("" for all).
func (uc *TrafficUseCase) Subscribe(crossing string) (*broadcast.Subscription, error) {
	scope, err := uc.SubscriptionScope(crossing)
	if err != nil {
		return nil, err
	}
	return uc.hub.Subscribe(scope), nil
}

// SubscriptionScope validates a crossing filter without registering anything; "" means every crossing.
func (uc *TrafficUseCase) SubscriptionScope(crossing string) (domain.CrossingPoint, error) {
	if crossing == "" {
		return "", nil
	}
	c, err := domain.ParseCrossingPoint(crossing)
	if err != nil {
		return "", routeError(err)
	}
	return c, nil
}

// Rescope changes a live subscription's crossing filter; "" clears it.
func (uc *TrafficUseCase) Rescope(sub *broadcast.Subscription, crossing string) error {
	if crossing == "" {
		sub.SetCrossing("")
		return nil
	}
	c, err := domain.ParseCrossingPoint(crossing)
	if err != nil {
		return routeError(err)
	}
	sub.SetCrossing(c)
	return nil
}

// CurrentEvent builds a traffic-update event from the current generation, scoped like a subscription.
// ok is false before the first refresh or when the scope matches nothing.
func (uc *TrafficUseCase) CurrentEvent(crossing domain.CrossingPoint) (domain.TrafficUpdateEvent, bool) {
	snap := uc.store.Snapshot()
	if snap.Generation == 0 {
		return domain.TrafficUpdateEvent{}, false
	}
	ev := domain.NewTrafficUpdateEvent(snap, crossing)
	return ev, len(ev.Data) > 0
}

// Health reports the current generation and fan-out size.
func (uc *TrafficUseCase) Health() dto.HealthResponse {
	snap := uc.store.Snapshot()
	return dto.HealthResponse{
		Status:      "healthy",
		Generation:  snap.Generation,
		Samples:     len(snap.Samples),
		Subscribers: uc.hub.Count(),
	}
}
