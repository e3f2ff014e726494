// Package docs Border Traffic Monitor API.
//
// Сервис мониторинга времени ожидания на пограничных переходах Малайзия - Сингапур.
// Генерирует синтетические выборки по каждому маршруту (переход x направление),
// хранит текущее состояние, считает историю, статистику и пиковые периоды,
// и рассылает обновления подписчикам по websocket, Redis и MQTT.
//
//	Schemes: http
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
