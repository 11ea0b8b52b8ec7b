package storage

import (
	"context"
	"fmt"

	"github.com/dd0wney/hydronet/pkg/network"
)

// SeedReport counts what Seed inserted
type SeedReport struct {
	Dams     int
	Nodes    int
	Elements int
}

// Demo data for a fresh installation
var (
	seedDams = []network.Dam{
		{Name: "Tehri Dam", Lat: 30.3776, Lng: 78.4764, Status: network.DamNormal, Capacity: 3.2, WaterLevel: 820},
		{Name: "Bhakra Dam", Lat: 31.4113, Lng: 76.4385, Status: network.DamAlert, Capacity: 7.8, WaterLevel: 480},
		{Name: "Sardar Sarovar", Lat: 21.8294, Lng: 73.7483, Status: network.DamNormal, Capacity: 5.8, WaterLevel: 130},
	}

	seedNodes = []network.SystemNode{
		{NodeID: 1, Elevation: 4022.31},
		{NodeID: 2, Elevation: 3947.44},
	}
)

func seedElements() []*network.Element {
	return []*network.Element{
		{
			Type:       network.Reservoir,
			Name:       "HW",
			NodeA:      network.NodeRef(1),
			Properties: network.Properties{network.PropElevation: 4130.58},
		},
		{
			Type:  network.Conduit,
			Name:  "C1",
			NodeA: network.NodeRef(1),
			NodeB: network.NodeRef(2),
			Properties: network.Properties{
				network.PropLength:   13405.51,
				network.PropDiameter: 34.45,
				network.PropCelerity: 2852.51,
				network.PropFriction: 0.008,
				network.PropNumSeg:   5,
				network.PropCPlus:    0.1,
				network.PropCMinus:   0.1,
			},
		},
	}
}

// Seed fills each empty table with demo data. Tables that already hold rows
// are left untouched, so Seed is safe to run on every start.
func Seed(ctx context.Context, store Store) (SeedReport, error) {
	var report SeedReport

	dams, err := store.ListDams(ctx)
	if err != nil {
		return report, fmt.Errorf("seed dams: %w", err)
	}
	if len(dams) == 0 {
		for i := range seedDams {
			d := seedDams[i]
			if _, err := store.CreateDam(ctx, &d); err != nil {
				return report, fmt.Errorf("seed dam %q: %w", d.Name, err)
			}
			report.Dams++
		}
	}

	nodes, err := store.ListNodes(ctx)
	if err != nil {
		return report, fmt.Errorf("seed nodes: %w", err)
	}
	if len(nodes) == 0 {
		for i := range seedNodes {
			n := seedNodes[i]
			if _, err := store.CreateNode(ctx, &n); err != nil {
				return report, fmt.Errorf("seed node %d: %w", n.NodeID, err)
			}
			report.Nodes++
		}
	}

	elements, err := store.ListElements(ctx)
	if err != nil {
		return report, fmt.Errorf("seed elements: %w", err)
	}
	if len(elements) == 0 {
		for _, e := range seedElements() {
			if _, err := store.CreateElement(ctx, e); err != nil {
				return report, fmt.Errorf("seed element %q: %w", e.Name, err)
			}
			report.Elements++
		}
	}

	return report, nil
}
