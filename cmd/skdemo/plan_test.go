package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/skia"
	"github.com/gogpu/skia/internal/softengine"
)

func TestMain(m *testing.M) {
	if err := skia.Init(skia.WithEngine(softengine.New().Lib())); err != nil {
		panic(err)
	}
	code := m.Run()
	_ = skia.Shutdown()
	os.Exit(code)
}

func TestRenderAllScenes(t *testing.T) {
	plan, err := loadPlan("", nil)
	require.NoError(t, err)
	plan.OutDir = t.TempDir()

	written, err := plan.Run(context.Background(), 4)
	require.NoError(t, err)
	// The picture scene also writes its serialized recording.
	require.Len(t, written, len(scenes)+1)

	for _, path := range written {
		b, err := os.ReadFile(path)
		require.NoError(t, err)
		require.NotEmpty(t, b, path)
		switch filepath.Ext(path) {
		case ".png":
			cfg, err := png.DecodeConfig(bytes.NewReader(b))
			require.NoError(t, err, path)
			require.Positive(t, cfg.Width)
		case ".pdf":
			require.True(t, bytes.HasPrefix(b, []byte("%PDF")), path)
		}
	}
}

func TestPlanFromFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "jobs.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
out_dir = "out"

[[job]]
scene = "barchart"
output = "chart.jpg"
quality = 85

[[job]]
scene = "socialcard"
title = "Rendering from a job file"
author = "@gopher"
site = "example.dev"
tags = ["Go", "Skia"]

[[job]]
scene = "avatar"
name = "Ada Lovelace"
width = 64
height = 64
`), 0o644))

	plan, err := loadPlan(cfg, nil)
	require.NoError(t, err)
	require.Len(t, plan.Jobs, 3)
	require.Equal(t, "socialcard.png", plan.Jobs[1].Output)
	require.Equal(t, 1200, plan.Jobs[1].Width)
	require.Equal(t, []string{"Go", "Skia"}, plan.Jobs[1].Tags)

	plan.OutDir = filepath.Join(dir, plan.OutDir)
	written, err := plan.Run(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "out", "chart.jpg"),
		filepath.Join(dir, "out", "socialcard.png"),
		filepath.Join(dir, "out", "avatar.png"),
	}, written)

	jpg, err := os.ReadFile(written[0])
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xD8}, jpg[:2])

	avatar, err := os.ReadFile(written[2])
	require.NoError(t, err)
	ac, err := png.DecodeConfig(bytes.NewReader(avatar))
	require.NoError(t, err)
	require.Equal(t, 64, ac.Width)
}

func TestPlanValidation(t *testing.T) {
	_, err := loadPlan("", []string{"nope"})
	require.ErrorContains(t, err, `unknown scene "nope"`)

	dir := t.TempDir()
	dup := filepath.Join(dir, "dup.toml")
	require.NoError(t, os.WriteFile(dup, []byte("[[job]]\nscene = \"basic\"\n[[job]]\nscene = \"basic\"\n"), 0o644))
	_, err = loadPlan(dup, nil)
	require.ErrorContains(t, err, "already written by job 1")

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[[job]\nscene = 1\n"), 0o644))
	_, err = loadPlan(bad, nil)
	require.ErrorContains(t, err, "bad.toml:")

	empty := filepath.Join(dir, "empty.toml")
	require.NoError(t, os.WriteFile(empty, []byte("out_dir = \"x\"\n"), 0o644))
	_, err = loadPlan(empty, nil)
	require.ErrorContains(t, err, "no jobs")
}

func TestRunStopsOnCancel(t *testing.T) {
	plan, err := loadPlan("", []string{"basic", "gradient"})
	require.NoError(t, err)
	plan.OutDir = t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	written, err := plan.Run(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, written)
}

func TestHelpers(t *testing.T) {
	require.Equal(t, "AL", initials("Ada Lovelace"))
	require.Equal(t, "G", initials("gopher"))
	require.Equal(t, "", initials("   "))
	require.Equal(t, avatarColor("Ada"), avatarColor("Ada"))

	lines := wrapWords("Building Go Bindings for the Skia Graphics Library", 20)
	require.Equal(t, []string{"Building Go Bindings", "for the Skia", "Graphics Library"}, lines)
	require.Equal(t, []string{"supercalifragilistic"}, wrapWords("supercalifragilistic", 5))
}

func TestKitReleasesInReverse(t *testing.T) {
	var order []int
	k := &kit{}
	for i := range 3 {
		k.keep(releaseFunc(func() { order = append(order, i) }), nil)
	}
	k.check(nil)
	require.NoError(t, k.Err())
	k.release()
	require.Equal(t, []int{2, 1, 0}, order)
}

type releaseFunc func()

func (f releaseFunc) Release() { f() }
