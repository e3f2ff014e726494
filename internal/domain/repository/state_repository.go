package repository

import (
	"time"

	"github.com/border-traffic-monitor/internal/domain"
)

// StateRepository - хранилище текущего состояния по маршрутам.
// Readers always observe one complete generation; writers are serialized.
type StateRepository interface {
	// Current возвращает последнюю выборку маршрута
	Current(route domain.Route) (*domain.TrafficSample, bool)

	// Snapshot возвращает текущее поколение целиком. The result must be treated as read-only.
	Snapshot() *domain.Snapshot

	// ReplaceAll атомарно заменяет всё содержимое хранилища
	ReplaceAll(samples []domain.TrafficSample, at time.Time) (*domain.Snapshot, error)

	// Put заменяет выборку одного маршрута, публикуя новое поколение
	Put(sample domain.TrafficSample, at time.Time) (*domain.Snapshot, error)
}
