package params

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"time"
)

const (
	PhotosTableFileName = "trajectory_photos.csv"
	StatsTableFileName  = "trajectory_stats.csv"
	RunsDBFileName      = "runs.db"
)

var DatadirRoot = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".trajd")
	}
	return filepath.Join(home, ".trajd")
}()

func DefaultRunsDBPath() string {
	return filepath.Join(DatadirRoot, RunsDBFileName)
}

var DefaultGZipCompressionLevel = gzip.BestCompression

// DefaultDedupeCacheSize bounds the record duplicate window at load.
var DefaultDedupeCacheSize = 100_000

// DefaultScanLogInterval is how often long scans report progress.
var DefaultScanLogInterval = 5 * time.Second

// DefaultBufferSize is the channel capacity for streamed line pipelines.
var DefaultBufferSize = 10_000

// UnsetPrecision leaves floats in their shortest round-trip form.
const UnsetPrecision = -1

type InfluxConfig struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// DefaultInfluxConfig reads the conventional INFLUXDB_* environment.
func DefaultInfluxConfig() *InfluxConfig {
	return &InfluxConfig{
		URL:    os.Getenv("INFLUXDB_URL"),
		Token:  os.Getenv("INFLUXDB_TOKEN"),
		Org:    os.Getenv("INFLUXDB_ORG"),
		Bucket: os.Getenv("INFLUXDB_BUCKET"),
	}
}

func (c *InfluxConfig) Enabled() bool {
	return c != nil && c.URL != ""
}

type S3Config struct {
	Bucket  string
	Prefix  string
	Timeout time.Duration
}

// DefaultS3Config uses AWS_BUCKETNAME; the AWS SDK reads credentials and region from the environment.
func DefaultS3Config() *S3Config {
	return &S3Config{
		Bucket:  os.Getenv("AWS_BUCKETNAME"),
		Prefix:  "trajectories",
		Timeout: 30 * time.Second,
	}
}

func (c *S3Config) Enabled() bool {
	return c != nil && c.Bucket != ""
}
