package models

import "errors"

var (
	// ErrEmergencyNotFound возвращается операциями над одним инцидентом, если ID неизвестен
	ErrEmergencyNotFound = errors.New("emergency not found")
	// ErrInvalidInput - нарушение контракта вызывающей стороной
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoRoute - провайдер маршрутов не вернул ни одного маршрута
	ErrNoRoute = errors.New("no route available")
)
