// Command skdemo renders the example scenes of the skia bindings to files.
//
// Usage:
//
//	skdemo [-soft] [-lib path] [-out dir] [-j n] [-config jobs.toml] [scene...]
//
// Without a job file every named scene (or every known scene) is rendered
// once with its default settings.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/gogpu/skia"
	"github.com/gogpu/skia/internal/softengine"
)

func main() {
	var (
		config  = flag.String("config", "", "TOML job file")
		libPath = flag.String("lib", "", "path to the SkiaSharp shared library")
		soft    = flag.Bool("soft", false, "render with the built-in software engine")
		outDir  = flag.String("out", "", "output directory (overrides the job file)")
		workers = flag.Int("j", runtime.GOMAXPROCS(0), "jobs rendered concurrently")
		verbose = flag.Bool("v", false, "log engine activity")
		list    = flag.Bool("list", false, "list scenes and exit")
	)
	flag.Parse()

	if *list {
		fmt.Println(strings.Join(sceneNames(), "\n"))
		return
	}
	if *verbose {
		skia.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	opt := skia.WithLibraryPath(*libPath)
	if *soft {
		opt = skia.WithEngine(softengine.New().Lib())
	}
	if err := skia.Init(opt); err != nil {
		log.Fatalf("skdemo: %v (try -soft)", err)
	}
	defer func() { _ = skia.Shutdown() }()

	plan, err := loadPlan(*config, flag.Args())
	if err != nil {
		log.Fatalf("skdemo: %v", err)
	}
	if *outDir != "" {
		plan.OutDir = *outDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	written, err := plan.Run(ctx, *workers)
	for _, path := range written {
		log.Printf("wrote %s", path)
	}
	if err != nil {
		log.Fatalf("skdemo: %v", err)
	}
}
