package entity

import "time"

// ProductStock es la proyección materializada del kardex: gramos disponibles
// por producto. Solo el registrador de movimientos la modifica; nunca puede
// quedar negativa.
type ProductStock struct {
	ProductID           string
	TotalGramsAvailable int64
	LastUpdated         time.Time
}
