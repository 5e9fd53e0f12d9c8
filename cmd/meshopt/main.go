// Command meshopt runs the mesh-optimization core over an OBJ file
// and writes the optimized result back out.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"meshopt/internal/config"
	"meshopt/internal/logger"
	"meshopt/internal/workpool"
	"meshopt/mesh"
)

func main() {
	config.ParseFlags()
	inPath := flag.Arg(0)
	outPath := flag.Arg(1)
	if inPath == "" || outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: meshopt [flags] <in.obj> <out.obj>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Log.Info("=== meshopt ===")
	logger.Sugar.Debugf("config: %+v", cfg)

	verts, tris, err := loadOBJ(inPath)
	if err != nil {
		logger.Log.Error("failed to load input mesh", zap.Error(err))
		os.Exit(1)
	}

	m, err := mesh.NewMeshFromArrays(logger.Log, verts, tris)
	if err != nil {
		logger.Log.Error("failed to construct mesh", zap.Error(err))
		os.Exit(1)
	}

	pool := workpool.New(cfg.Workers.PoolSize)
	m.BuildAdjacency(logger.Log, pool)

	reached := run(m, cfg, pool)
	logger.Log.Info("optimization complete",
		zap.Bool("goalReached", reached),
		zap.Int("vertices", len(m.GetVertices())),
		zap.Int("triangles", len(m.GetTriangles())))

	if err := writeOBJ(outPath, m); err != nil {
		logger.Log.Error("failed to write output mesh", zap.Error(err))
		os.Exit(1)
	}
}

func run(m *mesh.Mesh, cfg *config.Config, pool *workpool.Pool) bool {
	m.CoarseFlat(cfg.Coarsen.CoarsenessRate, 5, cfg.Eigen.Radius, true, logger.Log, pool)
	return m.Smooth(
		cfg.Smoothing.MinAngleTarget,
		cfg.Smoothing.MaxAngleTarget,
		cfg.Smoothing.MaxIterations,
		cfg.Smoothing.PreserveRidges,
		cfg.Eigen.Radius,
		true,
		logger.Log,
	)
}
