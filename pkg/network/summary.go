package network

// Summary aggregates the model for the dashboard
type Summary struct {
	TotalElements  int            `json:"totalElements"`
	ElementsByType map[string]int `json:"elementsByType"`
	NodeCount      int            `json:"nodeCount"`
	DamCount       int            `json:"damCount"`
	ActiveAlerts   int            `json:"activeAlerts"`
	TotalCapacity  float64        `json:"totalCapacity"`
}

// Summarize counts elements per canonical type and rolls up dam status.
// Every canonical type is present in ElementsByType, zero or not; unknown
// legacy types are counted under their stored name.
func Summarize(elements []*Element, nodes []*SystemNode, dams []*Dam) Summary {
	s := Summary{
		ElementsByType: make(map[string]int, len(ElementTypes)),
		NodeCount:      len(nodes),
	}
	for _, t := range ElementTypes {
		s.ElementsByType[string(t)] = 0
	}

	for _, e := range elements {
		if e == nil {
			continue
		}
		s.TotalElements++
		s.ElementsByType[string(e.Type.Normalize())]++
	}

	for _, d := range dams {
		if d == nil {
			continue
		}
		s.DamCount++
		s.TotalCapacity += d.Capacity
		if d.Status != DamNormal {
			s.ActiveAlerts++
		}
	}

	return s
}
