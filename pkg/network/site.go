package network

// SystemNode is a topological connection point referenced by element NodeA/NodeB
type SystemNode struct {
	ID        int64   `json:"id"`
	NodeID    int64   `json:"nodeId"`
	Elevation float64 `json:"elevation"`
}

// DamStatus is the operational state shown on the map
type DamStatus string

const (
	DamNormal   DamStatus = "Normal"
	DamAlert    DamStatus = "Alert"
	DamCritical DamStatus = "Critical"
)

// Dam is a monitored dam site
type Dam struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Status     DamStatus `json:"status"`
	Capacity   float64   `json:"capacity"` // TMC
	WaterLevel float64   `json:"waterLevel"`
}
