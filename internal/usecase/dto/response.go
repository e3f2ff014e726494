package dto

import (
	"github.com/border-traffic-monitor/internal/domain"
)

// HistoryResponse - ответ с историей
type HistoryResponse struct {
	CrossingPoint domain.CrossingPoint   `json:"crossingPoint"`
	Direction     domain.Direction       `json:"direction"`
	Hours         int                    `json:"hours"`
	Count         int                    `json:"count"`
	Data          []domain.TrafficSample `json:"data"`
}

// StatisticsResponse - ответ со статистикой
type StatisticsResponse struct {
	CrossingPoint domain.CrossingPoint `json:"crossingPoint"`
	Direction     domain.Direction     `json:"direction"`
	Hours         int                  `json:"hours"`
	Statistics    *domain.Statistics   `json:"statistics"`
}

// PeakTimesResponse - ответ с анализом пиков
type PeakTimesResponse struct {
	CrossingPoint domain.CrossingPoint   `json:"crossingPoint"`
	Direction     domain.Direction       `json:"direction"`
	Days          int                    `json:"days"`
	PeakTimes     []domain.PeakTimeEntry `json:"peakTimes"`
}

// DataSource describes an upstream feed shown to operators.
type DataSource struct {
	Name        string `json:"name"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description"`
}

// HealthResponse - состояние движка
type HealthResponse struct {
	Status      string `json:"status"`
	Generation  uint64 `json:"generation"`
	Samples     int    `json:"samples"`
	Subscribers int    `json:"subscribers"`
}
