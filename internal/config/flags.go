package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagLevel    = flag.String("log-level", "", "Logging level (debug, info, warn, error)")
	flagLogFile  = flag.String("log-file", "", "Rotating log file path")
	flagIters    = flag.Int("max-iterations", 0, "Override smoothing max iterations")
	flagMinAngle = flag.Float64("min-angle", 0, "Override smoothing minimum angle target")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

func applyFlags(cfg *Config) {
	if *flagLevel != "" {
		cfg.Logging.Level = *flagLevel
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagIters > 0 {
		cfg.Smoothing.MaxIterations = *flagIters
	}
	if *flagMinAngle > 0 {
		cfg.Smoothing.MinAngleTarget = *flagMinAngle
	}
}
