// Package storage persists the hydraulic network model: elements, system
// nodes and dam sites.
package storage

import (
	"context"

	"github.com/dd0wney/hydronet/pkg/network"
)

// Store is the persistence contract shared by the in-memory and PostgreSQL
// backends. List operations return entities in ascending id order.
type Store interface {
	ListElements(ctx context.Context) ([]*network.Element, error)
	// CreateElement assigns e.ID and returns the stored copy.
	CreateElement(ctx context.Context, e *network.Element) (*network.Element, error)
	// DeleteElement returns an error wrapping ErrNotFound for unknown ids.
	DeleteElement(ctx context.Context, id int64) error

	ListNodes(ctx context.Context) ([]*network.SystemNode, error)
	CreateNode(ctx context.Context, n *network.SystemNode) (*network.SystemNode, error)

	ListDams(ctx context.Context) ([]*network.Dam, error)
	CreateDam(ctx context.Context, d *network.Dam) (*network.Dam, error)

	Ping(ctx context.Context) error
	Close() error
}
