package storage

import "context"

// migrate creates the network tables. Column names match the legacy schema
// so existing databases can be attached as-is.
func (s *PGStore) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS network_elements (
		id SERIAL PRIMARY KEY,
		type TEXT NOT NULL,
		name TEXT NOT NULL,
		node_a INTEGER,
		node_b INTEGER,
		properties JSONB NOT NULL DEFAULT '{}'::jsonb
	);

	CREATE TABLE IF NOT EXISTS system_nodes (
		id SERIAL PRIMARY KEY,
		node_id INTEGER NOT NULL,
		elevation DOUBLE PRECISION NOT NULL
	);

	CREATE TABLE IF NOT EXISTS dams (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL DEFAULT 'Normal',
		capacity DOUBLE PRECISION NOT NULL,
		water_level DOUBLE PRECISION NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_system_nodes_node_id ON system_nodes(node_id);
	`

	_, err := s.pool.Exec(ctx, schema)
	return err
}
