package models

import "fmt"

// Position - пара координат в порядке [долгота, широта], как ее ожидает карта
type Position [2]float64

func NewPosition(lon, lat float64) Position {
	return Position{lon, lat}
}

func (p Position) Lon() float64 { return p[0] }

func (p Position) Lat() float64 { return p[1] }

// Validate проверяет, что координаты лежат в допустимых границах
func (p Position) Validate() error {
	if p.Lon() < -180 || p.Lon() > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidInput, p.Lon())
	}
	if p.Lat() < -90 || p.Lat() > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidInput, p.Lat())
	}
	return nil
}
