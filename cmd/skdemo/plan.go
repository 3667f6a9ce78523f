package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sync/errgroup"
)

// Job renders one scene to one output file.
type Job struct {
	Scene   string `toml:"scene"`
	Output  string `toml:"output"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Quality int    `toml:"quality"`

	// Scene specific inputs.
	Title  string   `toml:"title"`
	Author string   `toml:"author"`
	Site   string   `toml:"site"`
	Tags   []string `toml:"tags"`
	Name   string   `toml:"name"`
}

// Plan is the contents of a job file.
//
//	out_dir = "out"
//
//	[[job]]
//	scene = "barchart"
//	output = "chart.jpg"
//	quality = 85
type Plan struct {
	OutDir string `toml:"out_dir"`
	Jobs   []Job  `toml:"job"`
}

// loadPlan reads the job file at path. Without a file it builds one job
// per scene in names, or per known scene when names is empty.
func loadPlan(path string, names []string) (*Plan, error) {
	if path == "" {
		if len(names) == 0 {
			names = sceneNames()
		}
		p := &Plan{}
		for _, n := range names {
			p.Jobs = append(p.Jobs, Job{Scene: n})
		}
		return p, p.validate()
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Plan
	if err := toml.Unmarshal(b, &p); err != nil {
		var de *toml.DecodeError
		if errors.As(err, &de) {
			row, col := de.Position()
			return nil, fmt.Errorf("%s:%d:%d: %w", path, row, col, err)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &p, nil
}

func (p *Plan) validate() error {
	if len(p.Jobs) == 0 {
		return errors.New("no jobs")
	}
	seen := make(map[string]int)
	for i := range p.Jobs {
		j := &p.Jobs[i]
		sc, ok := scenes[j.Scene]
		if !ok {
			return fmt.Errorf("job %d: unknown scene %q", i+1, j.Scene)
		}
		if j.Output == "" {
			j.Output = j.Scene + sc.ext
		}
		if prev, dup := seen[j.Output]; dup {
			return fmt.Errorf("job %d: output %q already written by job %d", i+1, j.Output, prev)
		}
		seen[j.Output] = i + 1
		if j.Width <= 0 {
			j.Width = sc.width
		}
		if j.Height <= 0 {
			j.Height = sc.height
		}
	}
	return nil
}

// Run renders every job with at most workers running at once and returns
// the files written, in job order.
func (p *Plan) Run(ctx context.Context, workers int) ([]string, error) {
	if p.OutDir != "" {
		if err := os.MkdirAll(p.OutDir, 0o755); err != nil {
			return nil, err
		}
	}

	var (
		mu      sync.Mutex
		written = make(map[int][]string)
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, j := range p.Jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files, err := scenes[j.Scene].render(j, filepath.Join(p.OutDir, j.Output))
			if err != nil {
				return fmt.Errorf("%s: %w", j.Scene, err)
			}
			mu.Lock()
			written[i] = files
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	var out []string
	keys := make([]int, 0, len(written))
	for k := range written {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		out = append(out, written[k]...)
	}
	return out, err
}
