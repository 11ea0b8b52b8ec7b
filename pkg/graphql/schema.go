// Package graphql serves a read-only GraphQL view of the network model.
package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/hydronet/pkg/network"
)

// Reader is the read side of the element store
type Reader interface {
	ListElements(ctx context.Context) ([]*network.Element, error)
	ListNodes(ctx context.Context) ([]*network.SystemNode, error)
	ListDams(ctx context.Context) ([]*network.Dam, error)
}

// DeckFunc renders the current model as a solver input deck
type DeckFunc func(ctx context.Context) (string, error)

// GenerateSchema builds the query schema over reader. deck may be nil, in
// which case the deck field is omitted.
func GenerateSchema(reader Reader, deck DeckFunc) (graphql.Schema, error) {
	elementType := newElementType()
	nodeType := newNodeType()
	damType := newDamType()

	queryFields := graphql.Fields{
		"health": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return "ok", nil
			},
		},
		"elements": &graphql.Field{
			Type:        graphql.NewList(elementType),
			Description: "Network elements in id order, optionally filtered by type (aliases accepted)",
			Args: graphql.FieldConfigArgument{
				"type": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				elements, err := reader.ListElements(p.Context)
				if err != nil {
					return nil, err
				}
				raw, ok := p.Args["type"].(string)
				if !ok || raw == "" {
					return elements, nil
				}
				want := network.ElementType(raw).Normalize()
				filtered := make([]*network.Element, 0, len(elements))
				for _, e := range elements {
					if e.Type.Normalize() == want {
						filtered = append(filtered, e)
					}
				}
				return filtered, nil
			},
		},
		"element": &graphql.Field{
			Type: elementType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				id, err := strconv.ParseInt(fmt.Sprint(p.Args["id"]), 10, 64)
				if err != nil {
					return nil, fmt.Errorf("invalid element id %v", p.Args["id"])
				}
				elements, err := reader.ListElements(p.Context)
				if err != nil {
					return nil, err
				}
				for _, e := range elements {
					if e.ID == id {
						return e, nil
					}
				}
				return nil, nil
			},
		},
		"nodes": &graphql.Field{
			Type: graphql.NewList(nodeType),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return reader.ListNodes(p.Context)
			},
		},
		"dams": &graphql.Field{
			Type: graphql.NewList(damType),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return reader.ListDams(p.Context)
			},
		},
		"dashboard": &graphql.Field{
			Type: newSummaryType(),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				elements, err := reader.ListElements(p.Context)
				if err != nil {
					return nil, err
				}
				nodes, err := reader.ListNodes(p.Context)
				if err != nil {
					return nil, err
				}
				dams, err := reader.ListDams(p.Context)
				if err != nil {
					return nil, err
				}
				summary := network.Summarize(elements, nodes, dams)
				return &summary, nil
			},
		},
	}

	if deck != nil {
		queryFields["deck"] = &graphql.Field{
			Type:        graphql.NewNonNull(graphql.String),
			Description: "Solver input deck for the current model",
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return deck(p.Context)
			},
		}
	}

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: queryFields,
		}),
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}

	return schema, nil
}

func newElementType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Element",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if e, ok := p.Source.(*network.Element); ok {
						return strconv.FormatInt(e.ID, 10), nil
					}
					return nil, nil
				},
			},
			"type": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if e, ok := p.Source.(*network.Element); ok {
						return string(e.Type.Normalize()), nil
					}
					return nil, nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if e, ok := p.Source.(*network.Element); ok {
						return e.Name, nil
					}
					return nil, nil
				},
			},
			"nodeA": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if e, ok := p.Source.(*network.Element); ok && e.NodeA != nil {
						return *e.NodeA, nil
					}
					return nil, nil
				},
			},
			"nodeB": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if e, ok := p.Source.(*network.Element); ok && e.NodeB != nil {
						return *e.NodeB, nil
					}
					return nil, nil
				},
			},
			// JSON-encoded property map
			"properties": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					e, ok := p.Source.(*network.Element)
					if !ok {
						return nil, nil
					}
					props := e.Properties
					if props == nil {
						props = network.Properties{}
					}
					data, err := json.Marshal(props)
					if err != nil {
						return nil, err
					}
					return string(data), nil
				},
			},
			"property": &graphql.Field{
				Type:        graphql.Float,
				Description: "Numeric value of a property, null when absent or non-numeric",
				Args: graphql.FieldConfigArgument{
					"key": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					e, ok := p.Source.(*network.Element)
					if !ok {
						return nil, nil
					}
					key, _ := p.Args["key"].(string)
					if v, ok := e.Properties.Float(key); ok {
						return v, nil
					}
					return nil, nil
				},
			},
		},
	})
}

func newNodeType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "SystemNode",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if n, ok := p.Source.(*network.SystemNode); ok {
						return strconv.FormatInt(n.ID, 10), nil
					}
					return nil, nil
				},
			},
			"nodeId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if n, ok := p.Source.(*network.SystemNode); ok {
						return n.NodeID, nil
					}
					return nil, nil
				},
			},
			"elevation": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if n, ok := p.Source.(*network.SystemNode); ok {
						return n.Elevation, nil
					}
					return nil, nil
				},
			},
		},
	})
}

func newDamType() *graphql.Object {
	dam := func(p graphql.ResolveParams) (*network.Dam, bool) {
		d, ok := p.Source.(*network.Dam)
		return d, ok
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Dam",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if d, ok := dam(p); ok {
						return strconv.FormatInt(d.ID, 10), nil
					}
					return nil, nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if d, ok := dam(p); ok {
						return d.Name, nil
					}
					return nil, nil
				},
			},
			"lat": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if d, ok := dam(p); ok {
						return d.Lat, nil
					}
					return nil, nil
				},
			},
			"lng": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if d, ok := dam(p); ok {
						return d.Lng, nil
					}
					return nil, nil
				},
			},
			"status": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if d, ok := dam(p); ok {
						return string(d.Status), nil
					}
					return nil, nil
				},
			},
			"capacity": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if d, ok := dam(p); ok {
						return d.Capacity, nil
					}
					return nil, nil
				},
			},
			"waterLevel": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if d, ok := dam(p); ok {
						return d.WaterLevel, nil
					}
					return nil, nil
				},
			},
		},
	})
}

func newSummaryType() *graphql.Object {
	typeCount := graphql.NewObject(graphql.ObjectConfig{
		Name: "TypeCount",
		Fields: graphql.Fields{
			"type":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"count": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	summary := func(p graphql.ResolveParams) (*network.Summary, bool) {
		s, ok := p.Source.(*network.Summary)
		return s, ok
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Dashboard",
		Fields: graphql.Fields{
			"totalElements": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if s, ok := summary(p); ok {
						return s.TotalElements, nil
					}
					return nil, nil
				},
			},
			"elementsByType": &graphql.Field{
				Type: graphql.NewList(typeCount),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					s, ok := summary(p)
					if !ok {
						return nil, nil
					}
					out := make([]map[string]any, 0, len(s.ElementsByType))
					seen := make(map[string]bool, len(network.ElementTypes))
					for _, t := range network.ElementTypes {
						seen[string(t)] = true
						out = append(out, map[string]any{"type": string(t), "count": s.ElementsByType[string(t)]})
					}
					var legacy []string
					for name := range s.ElementsByType {
						if !seen[name] {
							legacy = append(legacy, name)
						}
					}
					sort.Strings(legacy)
					for _, name := range legacy {
						out = append(out, map[string]any{"type": name, "count": s.ElementsByType[name]})
					}
					return out, nil
				},
			},
			"nodeCount": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if s, ok := summary(p); ok {
						return s.NodeCount, nil
					}
					return nil, nil
				},
			},
			"damCount": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if s, ok := summary(p); ok {
						return s.DamCount, nil
					}
					return nil, nil
				},
			},
			"activeAlerts": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if s, ok := summary(p); ok {
						return s.ActiveAlerts, nil
					}
					return nil, nil
				},
			},
			"totalCapacity": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if s, ok := summary(p); ok {
						return s.TotalCapacity, nil
					}
					return nil, nil
				},
			},
		},
	})
}
