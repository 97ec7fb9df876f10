package attendanceconfig

import "context"

type Service interface {
	// Get returns the active config, or nil when none has been saved.
	Get(ctx context.Context) (*Config, error)

	// Save validates and upserts the singleton config.
	Save(ctx context.Context, req SaveConfigRequest) (Config, error)
}
