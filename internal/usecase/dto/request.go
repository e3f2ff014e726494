package dto

// StatusFilter - необязательный фильтр для списка текущих статусов
type StatusFilter struct {
	CrossingPoint string `query:"crossingPoint"`
	Direction     string `query:"direction"`
}

// RouteParams - параметры пути :crossingPoint/:direction
type RouteParams struct {
	CrossingPoint string `params:"crossingPoint" validate:"required"`
	Direction     string `params:"direction" validate:"required"`
}

// HistoryRequest - запрос истории. Limit 0 means no truncation.
type HistoryRequest struct {
	RouteParams
	Hours int `query:"hours" validate:"min=0,max=720"`
	Limit int `query:"limit" validate:"min=0"`
}

// StatisticsRequest - запрос статистики за окно
type StatisticsRequest struct {
	RouteParams
	Hours int `query:"hours" validate:"min=0,max=720"`
}

// PeakTimesRequest - запрос анализа пиков
type PeakTimesRequest struct {
	RouteParams
	Days int `query:"days" validate:"min=1,max=30"`
}

// ManualEntryRequest - ручной ввод данных. Pointers distinguish a missing value from zero.
type ManualEntryRequest struct {
	CrossingPoint   string   `json:"crossingPoint" validate:"required"`
	Direction       string   `json:"direction" validate:"required"`
	WaitTime        *int     `json:"waitTime" validate:"required,min=0,max=300"`
	CongestionLevel string   `json:"congestionLevel" validate:"required,oneof=low moderate high severe"`
	VehicleType     string   `json:"vehicleType" validate:"omitempty,oneof=car bus truck motorcycle all"`
	DataSource      string   `json:"dataSource"`
	Confidence      *float64 `json:"confidence" validate:"omitempty,min=0,max=1"`
}

// SubscribeMessage is a client frame on the websocket connection.
type SubscribeMessage struct {
	Type          string `json:"type"`
	CrossingPoint string `json:"crossingPoint"`
}
