package appconf

import "time"

// Environment names the operating mode of the application. Test forces
// in-memory storage so suites never touch an on-disk database.
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

// EnvFlagToEnvironment maps the -env flag value to an Environment.
// Unknown values fall back to Development.
func EnvFlagToEnvironment(flag string) Environment {
	switch flag {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

func (e Environment) String() string {
	switch e {
	case Production:
		return "production"
	case Test:
		return "test"
	default:
		return "development"
	}
}

// Config holds all the configuration settings for the application. Values
// are read from command-line flags with environment-variable fallbacks when
// the application starts.
type Config struct {
	Port   int
	Env    Environment
	DBPath string

	// Requests per second allowed per client; zero disables limiting.
	RateLimit int

	// Optional GTFS-RT vehicle positions feed. Empty disables the poller.
	VehiclePositionsURL     string
	RealtimeRefreshInterval time.Duration

	EnablePprof bool
}
