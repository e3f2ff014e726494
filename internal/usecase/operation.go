package usecase

// Operation names one externally visible engine operation. Transports use it for routing and metric labels.
type Operation string

const (
	OpCurrentStatusAll Operation = "current_status_all"
	OpCurrentStatus    Operation = "current_status"
	OpHistory          Operation = "history"
	OpStatistics       Operation = "statistics"
	OpPeakTimes        Operation = "peak_times"
	OpManualEntry      Operation = "manual_entry"
	OpDataSources      Operation = "data_sources"
	OpSubscribe        Operation = "subscribe"
	OpPeakAnalysis     Operation = "peak_analysis"
)

// Operations lists every operation in registration order.
func Operations() []Operation {
	return []Operation{
		OpCurrentStatusAll,
		OpCurrentStatus,
		OpHistory,
		OpStatistics,
		OpPeakTimes,
		OpManualEntry,
		OpDataSources,
		OpSubscribe,
		OpPeakAnalysis,
	}
}
