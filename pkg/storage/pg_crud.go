package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dd0wney/hydronet/pkg/network"
)

// ListElements returns all elements in id order. Legacy type spellings are
// normalized through the alias layer.
func (s *PGStore) ListElements(ctx context.Context) ([]*network.Element, error) {
	query := `
		SELECT id, type, name, node_a, node_b, properties
		FROM network_elements
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list elements: %w", err)
	}
	defer rows.Close()

	var elements []*network.Element
	for rows.Next() {
		e, err := scanElement(rows)
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list elements: %w", err)
	}

	if elements == nil {
		elements = []*network.Element{}
	}
	return elements, nil
}

func scanElement(row pgx.Row) (*network.Element, error) {
	e := &network.Element{}
	var (
		typ          string
		propertiesJS []byte
	)

	if err := row.Scan(&e.ID, &typ, &e.Name, &e.NodeA, &e.NodeB, &propertiesJS); err != nil {
		return nil, fmt.Errorf("failed to scan element: %w", err)
	}
	e.Type = network.ElementType(typ).Normalize()

	if len(propertiesJS) > 0 {
		if err := json.Unmarshal(propertiesJS, &e.Properties); err != nil {
			return nil, MarshalError("element", e.ID, err)
		}
	}
	if e.Properties == nil {
		e.Properties = network.Properties{}
	}

	return e, nil
}

// CreateElement inserts e and returns the stored row
func (s *PGStore) CreateElement(ctx context.Context, e *network.Element) (*network.Element, error) {
	if e == nil {
		return nil, &StorageError{Op: "create", Entity: "element", Cause: ErrInvalidID}
	}

	props := e.Properties
	if props == nil {
		props = network.Properties{}
	}
	propertiesJS, err := json.Marshal(props)
	if err != nil {
		return nil, MarshalError("element", 0, err)
	}

	query := `
		INSERT INTO network_elements (type, name, node_a, node_b, properties)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, type, name, node_a, node_b, properties
	`

	created, err := scanElement(s.pool.QueryRow(ctx, query,
		string(e.Type),
		e.Name,
		e.NodeA,
		e.NodeB,
		propertiesJS,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create element: %w", err)
	}

	return created, nil
}

// DeleteElement removes an element by id
func (s *PGStore) DeleteElement(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM network_elements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete element: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return NotFoundError("delete", "element", id)
	}
	return nil
}

// ListNodes returns all system nodes in id order
func (s *PGStore) ListNodes(ctx context.Context) ([]*network.SystemNode, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, node_id, elevation FROM system_nodes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	defer rows.Close()

	nodes := []*network.SystemNode{}
	for rows.Next() {
		n := &network.SystemNode{}
		if err := rows.Scan(&n.ID, &n.NodeID, &n.Elevation); err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}

	return nodes, nil
}

// CreateNode inserts a system node
func (s *PGStore) CreateNode(ctx context.Context, n *network.SystemNode) (*network.SystemNode, error) {
	if n == nil {
		return nil, &StorageError{Op: "create", Entity: "node", Cause: ErrInvalidID}
	}

	created := *n
	err := s.pool.QueryRow(ctx,
		`INSERT INTO system_nodes (node_id, elevation) VALUES ($1, $2) RETURNING id`,
		n.NodeID, n.Elevation,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create node: %w", err)
	}

	return &created, nil
}

// ListDams returns all dams in id order
func (s *PGStore) ListDams(ctx context.Context) ([]*network.Dam, error) {
	query := `
		SELECT id, name, lat, lng, status, capacity, water_level
		FROM dams
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list dams: %w", err)
	}
	defer rows.Close()

	dams := []*network.Dam{}
	for rows.Next() {
		d := &network.Dam{}
		var status string
		if err := rows.Scan(&d.ID, &d.Name, &d.Lat, &d.Lng, &status, &d.Capacity, &d.WaterLevel); err != nil {
			return nil, fmt.Errorf("failed to scan dam: %w", err)
		}
		d.Status = network.DamStatus(status)
		dams = append(dams, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list dams: %w", err)
	}

	return dams, nil
}

// CreateDam inserts a dam site
func (s *PGStore) CreateDam(ctx context.Context, d *network.Dam) (*network.Dam, error) {
	if d == nil {
		return nil, &StorageError{Op: "create", Entity: "dam", Cause: ErrInvalidID}
	}

	status := d.Status
	if status == "" {
		status = network.DamNormal
	}

	query := `
		INSERT INTO dams (name, lat, lng, status, capacity, water_level)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	created := *d
	created.Status = status
	if err := s.pool.QueryRow(ctx, query,
		d.Name, d.Lat, d.Lng, string(status), d.Capacity, d.WaterLevel,
	).Scan(&created.ID); err != nil {
		return nil, fmt.Errorf("failed to create dam: %w", err)
	}

	return &created, nil
}
