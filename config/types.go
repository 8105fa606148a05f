package config

// DatasetConfig locates the static schedule data.
type DatasetConfig struct {
	DataDir string `yaml:"dataDir" validate:"required"`
	DBPath  string `yaml:"dbPath" validate:"omitempty"`
}

// FeedConfig describes the realtime vehicle position feed.
type FeedConfig struct {
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"omitempty,url"`
	TTLMS               int    `yaml:"ttlMS" validate:"gte=0"`
}

// TTLConfig holds the per-network answer freshness windows, in seconds.
// Metro headways are long enough that a slightly stale answer is still
// right; bus answers go stale faster.
type TTLConfig struct {
	Metro int `yaml:"metro" validate:"gte=0"`
	Bus   int `yaml:"bus" validate:"gte=0"`
	Train int `yaml:"train" validate:"gte=0"`
}

// HTTPConfig tunes the outbound client shared by all providers.
type HTTPConfig struct {
	TimeoutMS   int `yaml:"timeoutMS" validate:"gte=0"`
	MaxRetries  int `yaml:"maxRetries" validate:"gte=0"`
	BaseDelayMS int `yaml:"baseDelayMS" validate:"gte=0"`
	MaxDelayMS  int `yaml:"maxDelayMS" validate:"gte=0"`
}

// CacheConfig tunes the in-process result caches.
type CacheConfig struct {
	SweepIntervalMS int `yaml:"sweepIntervalMS" validate:"gte=0"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Dataset DatasetConfig `yaml:"dataset" validate:"required"`
	Feed    FeedConfig    `yaml:"feed"`
	TTL     TTLConfig     `yaml:"ttl"`
	HTTP    HTTPConfig    `yaml:"http"`
	Cache   CacheConfig   `yaml:"cache"`
}
