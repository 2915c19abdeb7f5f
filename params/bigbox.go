package params

import (
	"fmt"
	"time"
)

// BigBoxConfig selects rows from a raw photo dump before trajectory generation.
type BigBoxConfig struct {
	Box BoundingBox

	// TimeMin and TimeMax bound the date taken, inclusive.
	TimeMin time.Time
	TimeMax time.Time

	// DedupeWindow drops kept rows whose photo id was kept within
	// the last DedupeWindow distinct ids. Zero disables it.
	DedupeWindow int
}

// DefaultBigBoxConfig covers Victoria, Australia, from 2000 to the dataset cut.
func DefaultBigBoxConfig() *BigBoxConfig {
	return &BigBoxConfig{
		Box: BoundingBox{
			MinLng: 141.9,
			MinLat: -39.3,
			MaxLng: 147.1,
			MaxLat: -35.8,
		},
		TimeMin: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		TimeMax: time.Date(2015, 3, 5, 23, 59, 59, 0, time.UTC),
	}
}

func (c *BigBoxConfig) Validate() error {
	if err := c.Box.Validate(); err != nil {
		return err
	}
	if c.TimeMax.Before(c.TimeMin) {
		return fmt.Errorf("%w: time max %v is before time min %v", ErrInvalidConfig, c.TimeMax, c.TimeMin)
	}
	if c.DedupeWindow < 0 {
		return fmt.Errorf("%w: dedupe window must be >= 0, got %d", ErrInvalidConfig, c.DedupeWindow)
	}
	return nil
}
