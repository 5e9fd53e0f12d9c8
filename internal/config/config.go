// Package config handles driver configuration loading. It is a CLI
// concern only — the mesh package itself takes plain function
// parameters and never sees a Config value.
package config

// Config holds every tunable the driver needs to run the optimizer.
type Config struct {
	Smoothing SmoothingConfig `yaml:"smoothing"`
	Coarsen   CoarsenConfig   `yaml:"coarsen"`
	Eigen     EigenConfig     `yaml:"eigen"`
	Workers   WorkersConfig   `yaml:"workers"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SmoothingConfig drives Mesh.Smooth.
type SmoothingConfig struct {
	MinAngleTarget float64 `yaml:"min_angle_target"`
	MaxAngleTarget float64 `yaml:"max_angle_target"`
	MaxIterations  int     `yaml:"max_iterations"`
	PreserveRidges bool    `yaml:"preserve_ridges"`
}

// CoarsenConfig holds the decimation parameters. cmd/meshopt reads only
// CoarsenessRate, as the rate passed to Mesh.CoarseFlat; FlatnessRate,
// DensenessWeight and MaxNormalAngle are loaded and saved but not
// passed to the mesh package.
type CoarsenConfig struct {
	CoarsenessRate  float64 `yaml:"coarseness_rate"`
	FlatnessRate    float64 `yaml:"flatness_rate"`
	DensenessWeight float64 `yaml:"denseness_weight"`
	MaxNormalAngle  float64 `yaml:"max_normal_angle"`
}

// EigenConfig tunes the structure-tensor BFS radius.
type EigenConfig struct {
	Radius int `yaml:"radius"`
}

// WorkersConfig sizes the data-parallel worker pool.
type WorkersConfig struct {
	PoolSize int `yaml:"pool_size"`
}

// LoggingConfig mirrors internal/logger's init parameters.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the same defaults
// Mesh.OptimizeUsingDefaultParameters uses internally.
func Default() *Config {
	return &Config{
		Smoothing: SmoothingConfig{
			MinAngleTarget: 15,
			MaxAngleTarget: 150,
			MaxIterations:  15,
			PreserveRidges: false,
		},
		Coarsen: CoarsenConfig{
			CoarsenessRate:  0.05,
			FlatnessRate:    1,
			DensenessWeight: 0,
			MaxNormalAngle:  -1,
		},
		Eigen: EigenConfig{
			Radius: 2,
		},
		Workers: WorkersConfig{
			PoolSize: 0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
