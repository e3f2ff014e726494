package errors

import "net/http"

var (
	ErrUnknownRoute = New(
		"UNKNOWN_ROUTE",
		"No traffic data found for the specified crossing",
		http.StatusNotFound,
	)

	ErrValidation = New(
		"VALIDATION_ERROR",
		"Missing required fields: crossingPoint, direction, waitTime, congestionLevel",
		http.StatusBadRequest,
	)

	ErrNoData = New(
		"NO_DATA",
		"No statistics available for the specified crossing",
		http.StatusNotFound,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
