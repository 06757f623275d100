package dto

import "time"

// BottleneckTotals demanda, oferta y pendiente de un alcance.
type BottleneckTotals struct {
	TotalDemand  int64   `json:"totalDemand"`
	TotalSupply  int64   `json:"totalSupply"`
	Pending      int64   `json:"pending"`
	PendingRatio float64 `json:"pendingRatio"`
	Status       string  `json:"status"`
}

// DayTotals totales de un día.
type DayTotals struct {
	Demand  int64 `json:"demand"`
	Supply  int64 `json:"supply"`
	Pending int64 `json:"pending"`
}

// BottleneckTrend comparación hoy vs ayer (porcentajes con un decimal).
type BottleneckTrend struct {
	Today        DayTotals `json:"today"`
	Yesterday    DayTotals `json:"yesterday"`
	DemandTrend  float64   `json:"demandTrend"`
	SupplyTrend  float64   `json:"supplyTrend"`
	PendingTrend float64   `json:"pendingTrend"`
}

// AreaBottleneck desglose por área activa.
type AreaBottleneck struct {
	AreaID   string `json:"areaId"`
	AreaName string `json:"areaName"`
	AreaType string `json:"areaType"`
	BottleneckTotals
}

// BottleneckAlert alerta por área en estado distinto de OK.
type BottleneckAlert struct {
	AreaID   string `json:"areaId"`
	AreaName string `json:"areaName"`
	Severity string `json:"severity"`
	Pending  int64  `json:"pending"`
	Message  string `json:"message"`
}

// BottleneckSummary respuesta de GET /api/dashboard/bottleneck.
type BottleneckSummary struct {
	CompanyID string            `json:"companyId"`
	AsOf      time.Time         `json:"asOf"`
	Global    BottleneckTotals  `json:"global"`
	Trend     BottleneckTrend   `json:"trend"`
	Areas     []AreaBottleneck  `json:"areas"`
	Alerts    []BottleneckAlert `json:"alerts"`
}
