package params

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
)

// ErrInvalidConfig is returned for any configuration rejected before processing starts.
var ErrInvalidConfig = errors.New("invalid configuration")

// BoundingBox is an axis-aligned region of interest in plain degrees.
type BoundingBox struct {
	MinLng float64 `mapstructure:"min_lng" json:"min_lng"`
	MinLat float64 `mapstructure:"min_lat" json:"min_lat"`
	MaxLng float64 `mapstructure:"max_lng" json:"max_lng"`
	MaxLat float64 `mapstructure:"max_lat" json:"max_lat"`
}

// MelbourneBox covers greater Melbourne.
var MelbourneBox = BoundingBox{
	MinLng: 144.597363,
	MinLat: -38.072257,
	MaxLng: 145.360413,
	MaxLat: -37.591764,
}

// Bound returns the box as an orb.Bound.
// Note that orb.Bound.Contains is inclusive of the edges; region filtering is not.
func (b BoundingBox) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinLng, b.MinLat},
		Max: orb.Point{b.MaxLng, b.MaxLat},
	}
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("[%v,%v,%v,%v]", b.MinLng, b.MinLat, b.MaxLng, b.MaxLat)
}

// Validate checks that the box is monotonic in both axes.
func (b BoundingBox) Validate() error {
	for _, v := range []float64{b.MinLng, b.MinLat, b.MaxLng, b.MaxLat} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: bounding box %s has a non-finite coordinate", ErrInvalidConfig, b)
		}
	}
	if !(b.MinLng < b.MaxLng) {
		return fmt.Errorf("%w: min longitude %v must be less than max longitude %v", ErrInvalidConfig, b.MinLng, b.MaxLng)
	}
	if !(b.MinLat < b.MaxLat) {
		return fmt.Errorf("%w: min latitude %v must be less than max latitude %v", ErrInvalidConfig, b.MinLat, b.MaxLat)
	}
	return nil
}

type TrajectoryConfig struct {
	// Box is the region of interest. A trajectory survives if any one of
	// its records lies strictly inside it.
	Box BoundingBox

	// MinPhotosPerTrajectory drops trajectories with fewer records.
	// It is applied before the region test.
	MinPhotosPerTrajectory int

	// TimeGap is the idle duration that forces a trajectory boundary.
	// Gaps equal to it split.
	TimeGap time.Duration
}

const (
	DefaultMinPhotosPerTrajectory = 1
	DefaultTimeGapHours           = 8.0
)

func DefaultTrajectoryConfig() *TrajectoryConfig {
	return &TrajectoryConfig{
		Box:                    MelbourneBox,
		MinPhotosPerTrajectory: DefaultMinPhotosPerTrajectory,
		TimeGap:                HoursToDuration(DefaultTimeGapHours),
	}
}

// HoursToDuration converts a (possibly fractional) hour count to a duration.
func HoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}

// TimeGapFromHours is HoursToDuration for user input: the hours must be positive and finite.
func TimeGapFromHours(hours float64) (time.Duration, error) {
	if !(hours > 0) || math.IsInf(hours, 0) {
		return 0, fmt.Errorf("%w: time gap must be a positive number of hours, got %v", ErrInvalidConfig, hours)
	}
	return HoursToDuration(hours), nil
}

// ParseBoundingBox reads "minLng,minLat,maxLng,maxLat" and validates the result.
func ParseBoundingBox(s string) (BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return BoundingBox{}, fmt.Errorf("%w: bounding box %q needs 4 comma-separated values", ErrInvalidConfig, s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return BoundingBox{}, fmt.Errorf("%w: bounding box %q: %v", ErrInvalidConfig, s, err)
		}
		v[i] = f
	}
	b := BoundingBox{MinLng: v[0], MinLat: v[1], MaxLng: v[2], MaxLat: v[3]}
	return b, b.Validate()
}

// Flag formats the box the way ParseBoundingBox reads it.
func (b BoundingBox) Flag() string {
	return strings.Join([]string{
		strconv.FormatFloat(b.MinLng, 'f', -1, 64),
		strconv.FormatFloat(b.MinLat, 'f', -1, 64),
		strconv.FormatFloat(b.MaxLng, 'f', -1, 64),
		strconv.FormatFloat(b.MaxLat, 'f', -1, 64),
	}, ",")
}

func (c *TrajectoryConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil trajectory config", ErrInvalidConfig)
	}
	if err := c.Box.Validate(); err != nil {
		return err
	}
	if c.MinPhotosPerTrajectory < 1 {
		return fmt.Errorf("%w: min photos per trajectory must be >= 1, got %d", ErrInvalidConfig, c.MinPhotosPerTrajectory)
	}
	if c.TimeGap <= 0 {
		return fmt.Errorf("%w: time gap must be positive, got %v", ErrInvalidConfig, c.TimeGap)
	}
	return nil
}
