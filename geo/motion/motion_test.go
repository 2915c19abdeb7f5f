package motion

import (
	"math"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/rotblauer/trajd/conceptual"
	"github.com/rotblauer/trajd/store"
	"github.com/rotblauer/trajd/types/record"
	"github.com/rotblauer/trajd/types/trajectory"
)

var (
	melbourne = orb.Point{144.9631, -37.8136}
	sydney    = orb.Point{151.2093, -33.8688}
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestGreatCircleKm(t *testing.T) {
	cases := []struct {
		name string
		a, b orb.Point
		want float64
	}{
		{"one degree of equator", orb.Point{0, 0}, orb.Point{1, 0}, 111.19508},
		{"antipodes on equator", orb.Point{0, 0}, orb.Point{180, 0}, 20015.11507},
		{"melbourne sydney", melbourne, sydney, 713.42849},
		{"same camera spot", orb.Point{145.314132, -37.765855}, orb.Point{145.314042, -37.765869}, 0.0080629},
	}
	for _, c := range cases {
		got := GreatCircleKm(c.a, c.b)
		if !near(got, c.want, c.want*1e-5) {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

// Reference distances for three Werribee-area photos, each within 10%.
func TestGreatCircleKmWerribee(t *testing.T) {
	p1 := orb.Point{144.73251, -37.85967}
	p2 := orb.Point{144.73306, -37.8615}
	p3 := orb.Point{144.32739, -38.14967}
	cases := []struct {
		a, b orb.Point
		want float64
	}{
		{p1, p2, 0.193},
		{p1, p3, 47.989},
		{p2, p3, 47.861},
	}
	for _, c := range cases {
		got := GreatCircleKm(c.a, c.b)
		if !near(got, c.want, c.want*0.1) {
			t.Errorf("GreatCircleKm(%v, %v) = %v, want %v within 10%%", c.a, c.b, got, c.want)
		}
	}
}

func TestGreatCircleKmIdentityAndSymmetry(t *testing.T) {
	pts := []orb.Point{
		{0, 0}, melbourne, sydney, {-122.288368, 47.622562}, {179.9, -89.9}, {-180, 90},
	}
	for _, a := range pts {
		if d := GreatCircleKm(a, a); d != 0 {
			t.Errorf("GreatCircleKm(%v, %v) = %v, want exactly 0", a, a, d)
		}
		for _, b := range pts {
			if GreatCircleKm(a, b) != GreatCircleKm(b, a) {
				t.Errorf("asymmetric: %v %v", a, b)
			}
		}
	}
}

// TestGreatCircleKmReference compares against orb's haversine, which uses the
// equatorial radius, after rescaling to the mean radius.
func TestGreatCircleKmReference(t *testing.T) {
	scale := EarthMeanRadiusKm * 1000 / orb.EarthRadius
	pairs := [][2]orb.Point{
		{melbourne, sydney},
		{{144.978418, -37.821446}, {145.011763, -37.768543}},
		{{-73.458709, 41.394066}, {-122.288368, 47.622562}},
	}
	for _, p := range pairs {
		want := geo.DistanceHaversine(p[0], p[1]) / 1000 * scale
		if got := GreatCircleKm(p[0], p[1]); !near(got, want, want*1e-9) {
			t.Errorf("%v: got %v, want %v", p, got, want)
		}
	}
}

func TestAverageSpeedKmh(t *testing.T) {
	if got := AverageSpeedKmh(12, 0); got != ZeroElapsedSpeedKmh {
		t.Errorf("zero elapsed: got %v", got)
	}
	if got := AverageSpeedKmh(0, time.Hour); got != 0 {
		t.Errorf("no distance: got %v", got)
	}
	if got := AverageSpeedKmh(10, 30*time.Minute); got != 20 {
		t.Errorf("10 km in 30 min: got %v", got)
	}
}

func newTrajectory(recs ...record.Record) (trajectory.Identified, *store.Store) {
	s := store.New()
	t := trajectory.Identified{ID: 7, Trajectory: trajectory.Trajectory{User: recs[0].UserID}}
	for _, r := range recs {
		t.Records = append(t.Records, s.Add(r))
	}
	return t, s
}

func TestCompute(t *testing.T) {
	t0 := time.Date(2010, 1, 26, 8, 34, 17, 0, time.UTC)
	a := orb.Point{144.978418, -37.821446}
	b := orb.Point{145.011763, -37.768543}
	tr, s := newTrajectory(
		record.Record{UserID: "u", Time: t0, Point: a},
		record.Record{UserID: "u", Time: t0.Add(30 * time.Minute), Point: b},
		record.Record{UserID: "u", Time: t0.Add(90 * time.Minute), Point: a},
	)
	got := Compute(tr, s)
	if got.ID != 7 || got.User != "u" || got.Photos != 3 || !got.Start.Equal(t0) {
		t.Errorf("identity columns: %+v", got)
	}
	wantKm := 2 * GreatCircleKm(a, b)
	if !near(got.DistanceKm, wantKm, 1e-12) {
		t.Errorf("distance = %v, want %v", got.DistanceKm, wantKm)
	}
	if got.ElapsedMinutes() != 90 {
		t.Errorf("minutes = %v", got.ElapsedMinutes())
	}
	if !near(got.SpeedKmh, wantKm/1.5, 1e-12) {
		t.Errorf("speed = %v, want %v", got.SpeedKmh, wantKm/1.5)
	}
}

func TestComputeSingleAndSimultaneous(t *testing.T) {
	t0 := time.Date(2010, 1, 26, 8, 34, 17, 0, time.UTC)
	single, s := newTrajectory(record.Record{UserID: "u", Time: t0, Point: melbourne})
	got := Compute(single, s)
	if got.Photos != 1 || got.DistanceKm != 0 || got.Elapsed != 0 || got.SpeedKmh != 0 {
		t.Errorf("single: %+v", got)
	}

	burst, s := newTrajectory(
		record.Record{UserID: "u", Time: t0, Point: melbourne},
		record.Record{UserID: "u", Time: t0, Point: sydney},
	)
	got = Compute(burst, s)
	if got.DistanceKm <= 700 || got.SpeedKmh != ZeroElapsedSpeedKmh {
		t.Errorf("simultaneous: %+v", got)
	}
}

func TestHighlights(t *testing.T) {
	stats := []trajectory.Stats{
		{ID: 0, Photos: 9, DistanceKm: 0, Elapsed: 10 * time.Hour, SpeedKmh: 0}, // stationary
		{ID: 1, Photos: 1, DistanceKm: 500, Elapsed: 0, SpeedKmh: 0},            // single photo
		{ID: 2, Photos: 4, DistanceKm: 3, Elapsed: 2 * time.Hour, SpeedKmh: 1.5},
		{ID: 3, Photos: 4, DistanceKm: 10, Elapsed: time.Hour, SpeedKmh: 10},
		{ID: 4, Photos: 2, DistanceKm: 1, Elapsed: 3 * time.Hour, SpeedKmh: 1.0 / 3},
	}
	got := Highlights(stats)
	want := map[string]conceptual.TrajectoryID{
		"most_photos":      2,
		"longest_time":     4,
		"longest_distance": 3,
		"highest_speed":    3,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d highlights", len(got))
	}
	for _, h := range got {
		if h.Stats.ID != want[h.Name] {
			t.Errorf("%s = trajectory %d, want %d", h.Name, h.Stats.ID, want[h.Name])
		}
	}

	if got := Highlights(stats[:2]); got != nil {
		t.Errorf("no eligible trajectories: got %v", got)
	}
}

func TestSummarize(t *testing.T) {
	if s := Summarize(nil); s.Trajectories != 0 || s.DistanceKm.Max != 0 {
		t.Errorf("empty: %+v", s)
	}
	stats := []trajectory.Stats{
		{Photos: 2, DistanceKm: 1, Elapsed: 10 * time.Minute, SpeedKmh: 6},
		{Photos: 3, DistanceKm: 2, Elapsed: 20 * time.Minute, SpeedKmh: 6},
		{Photos: 5, DistanceKm: 6, Elapsed: 30 * time.Minute, SpeedKmh: 12},
	}
	s := Summarize(stats)
	if s.Trajectories != 3 || s.Photos != 10 {
		t.Errorf("counts: %+v", s)
	}
	if s.DistanceKm.Mean != 3 || s.DistanceKm.Median != 2 || s.DistanceKm.Max != 6 {
		t.Errorf("distance: %+v", s.DistanceKm)
	}
	if s.Minutes.Mean != 20 || s.Minutes.Max != 30 {
		t.Errorf("minutes: %+v", s.Minutes)
	}
	if s.SpeedKmh.Median != 6 || s.SpeedKmh.Max != 12 {
		t.Errorf("speed: %+v", s.SpeedKmh)
	}
}
