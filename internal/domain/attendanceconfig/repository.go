package attendanceconfig

import "context"

type Repository interface {
	// Get returns the singleton config, or (nil, nil) when no admin has
	// saved one yet.
	Get(ctx context.Context) (*Config, error)

	// Upsert writes the singleton row, creating it on first save.
	Upsert(ctx context.Context, cfg Config) (Config, error)
}
