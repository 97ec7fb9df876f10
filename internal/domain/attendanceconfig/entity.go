package attendanceconfig

import "time"

// SingletonID is the fixed primary key of the single configuration row.
// There is exactly one logical configuration; it is created lazily on the
// first admin save and never deleted.
const SingletonID = "default"

type Config struct {
	ID                 string
	WorkStartHour      int
	WorkEndHour        int
	OfficeLat          *float64
	OfficeLng          *float64
	RadiusMeters       *int
	UseGeofence        bool
	EnforceGeofence    bool
	RequireProofOfWork bool
	AllowWFH           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// GeofenceActive reports whether the config carries everything needed to
// compute a distance: the feature flag plus a complete office circle.
func (c *Config) GeofenceActive() bool {
	return c != nil && c.UseGeofence &&
		c.OfficeLat != nil && c.OfficeLng != nil &&
		c.RadiusMeters != nil && *c.RadiusMeters > 0
}
