// cortexmorph renders animated morphs between triangular surface meshes,
// colored by per-vertex scalar data through a colormap.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/cortexmorph/internal/anim"
	"github.com/Faultbox/cortexmorph/internal/colormap"
	"github.com/Faultbox/cortexmorph/internal/config"
	"github.com/Faultbox/cortexmorph/internal/geom"
	"github.com/Faultbox/cortexmorph/internal/logger"
	"github.com/Faultbox/cortexmorph/internal/parcel"
	"github.com/Faultbox/cortexmorph/internal/render"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "render":
		cmdRender(args)
	case "parcellate":
		cmdParcellate(args)
	case "info":
		cmdInfo(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`cortexmorph - surface morph animation renderer

Usage:
  cortexmorph <command> [options]

Commands:
  render -config <run.yaml> [overrides]   Render the configured animation
  parcellate -in <mesh.obj> -k <n>        Cluster vertices into parcels
  info <mesh.obj> [...]                   Show mesh statistics

Examples:
  cortexmorph render -config run.yaml
  cortexmorph render -config run.yaml -gif morph.gif -steps 20
  cortexmorph parcellate -in brain.obj -k 8 -out parcels.txt
  cortexmorph info small.obj large.obj`)
}

func cmdRender(args []string) {
	if err := config.ParseArgs(args); err != nil {
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := runRender(cfg); err != nil {
		logger.Error("render failed", zap.Error(err))
		os.Exit(1)
	}
}

func runRender(cfg *config.Config) error {
	keyframes, faces, err := loadKeyframes(cfg.Surfaces.Keyframes)
	if err != nil {
		return err
	}
	n := len(keyframes[0])
	logger.Sugar.Infof("loaded %d keyframes: %d vertices, %d faces", len(keyframes), n, len(faces))

	data, err := loadDataTrack(cfg.Surfaces.Data, n)
	if err != nil {
		return err
	}

	parcels, err := loadParcels(cfg, keyframes[0], n)
	if err != nil {
		return err
	}

	maps, err := loadMapTrack(cfg.Color.Maps)
	if err != nil {
		return err
	}
	space, err := colormap.ParseSpace(cfg.Color.Space)
	if err != nil {
		return err
	}
	limits, err := anim.ParseLimitsMode(cfg.Color.Limits)
	if err != nil {
		return err
	}

	cam := render.NewCamera(cfg.Render.View[0], cfg.Render.View[1])
	var lights []render.Light
	for _, le := range cfg.Render.Lights {
		lights = append(lights, render.Light{Azimuth: le[0], Elevation: le[1], Intensity: 0.6})
	}
	sess, err := render.NewSession(render.Options{
		Width:       cfg.Render.Width,
		Height:      cfg.Render.Height,
		Supersample: cfg.Render.Supersample,
		Background:  cfg.Render.Background,
	}, cam, lights)
	if err != nil {
		return err
	}

	sink, err := buildSink(cfg.Output)
	if err != nil {
		return err
	}

	driver, err := anim.NewDriver(anim.Options{
		Keyframes:      keyframes,
		Faces:          faces,
		Data:           data,
		Parcels:        parcels,
		Maps:           maps,
		Space:          space,
		LimitsMode:     limits,
		Lo:             cfg.Color.Range[0],
		Hi:             cfg.Color.Range[1],
		Steps:          cfg.Animation.Steps,
		FirstRepeat:    cfg.Animation.FirstRepeat,
		LastRepeat:     cfg.Animation.LastRepeat,
		KeepLast:       cfg.Animation.KeepLast,
		DrawBoundaries: cfg.Render.DrawBoundaries,
		LineWidth:      cfg.Render.LineWidth,
		BoundaryColor:  cfg.Render.BoundaryColor,
	}, sess, sink)
	if err != nil {
		sink.Close()
		return err
	}

	if err := driver.Run(); err != nil {
		sink.Close()
		return err
	}
	return sink.Close()
}

// loadKeyframes loads the morph surfaces and checks that they agree on
// vertex count. The first keyframe's faces are used throughout.
func loadKeyframes(paths []string) ([][]mgl64.Vec3, [][3]int, error) {
	var keyframes [][]mgl64.Vec3
	var faces [][3]int
	for i, path := range paths {
		mesh, err := geom.LoadOBJ(path)
		if err != nil {
			return nil, nil, err
		}
		if i == 0 {
			faces = mesh.Faces
		} else if len(mesh.Verts) != len(keyframes[0]) {
			return nil, nil, fmt.Errorf("keyframe %s has %d vertices, %s has %d",
				path, len(mesh.Verts), paths[0], len(keyframes[0]))
		}
		keyframes = append(keyframes, mesh.Verts)
	}
	return keyframes, faces, nil
}

func loadDataTrack(paths []string, n int) (*anim.ScalarTrack, error) {
	switch len(paths) {
	case 0:
		return nil, nil
	case 1:
		data, err := geom.LoadScalars(paths[0], n)
		if err != nil {
			return nil, err
		}
		return anim.StaticScalars(data), nil
	default:
		frames := make([][]float64, len(paths))
		for i, path := range paths {
			data, err := geom.LoadScalars(path, n)
			if err != nil {
				return nil, err
			}
			frames[i] = data
		}
		return anim.VaryingScalars(frames), nil
	}
}

func loadParcels(cfg *config.Config, verts []mgl64.Vec3, n int) ([]int, error) {
	if cfg.Surfaces.Parcels != "" {
		return geom.LoadParcels(cfg.Surfaces.Parcels, n)
	}
	if cfg.Surfaces.Clusters > 0 {
		logger.Sugar.Infof("clustering %d vertices into %d parcels", n, cfg.Surfaces.Clusters)
		return parcel.Cluster(verts, cfg.Surfaces.Clusters, nil)
	}
	return nil, nil
}

func loadMapTrack(names []string) (*anim.MapTrack, error) {
	if len(names) == 1 {
		cm, err := colormap.ByName(names[0])
		if err != nil {
			return nil, err
		}
		return anim.StaticMap(cm), nil
	}
	maps := make([]colormap.Map, len(names))
	for i, name := range names {
		cm, err := colormap.ByName(name)
		if err != nil {
			return nil, err
		}
		maps[i] = cm
	}
	return anim.VaryingMaps(maps), nil
}

func buildSink(out config.OutputConfig) (anim.Sink, error) {
	var sinks anim.MultiSink
	if out.FramesDir != "" {
		png, err := anim.NewPNGDirSink(out.FramesDir)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, png)
	}
	if out.GIF != "" {
		sinks = append(sinks, anim.NewGIFSink(out.GIF, out.DelayMS))
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return sinks, nil
}

func cmdParcellate(args []string) {
	fs := flag.NewFlagSet("parcellate", flag.ExitOnError)
	in := fs.String("in", "", "Input OBJ mesh")
	k := fs.Int("k", 8, "Number of parcels")
	out := fs.String("out", "", "Output label file (default stdout)")
	sortY := fs.Bool("sort-y", false, "Renumber parcels front to back by centroid")
	fs.Parse(args)

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Usage: cortexmorph parcellate -in <mesh.obj> -k <n> [-out labels.txt] [-sort-y]")
		os.Exit(1)
	}

	mesh, err := geom.LoadOBJ(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	labels, err := parcel.Cluster(mesh.Verts, *k, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *sortY {
		labels = renumberByCentroidY(mesh.Verts, labels, *k)
	}

	w := bufio.NewWriter(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = bufio.NewWriter(f)
	}
	for _, l := range labels {
		fmt.Fprintln(w, l)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *out != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d labels (%d parcels) to %s\n", len(labels), parcel.Distinct(labels), *out)
	}
}

// renumberByCentroidY reassigns parcel ids 1..k in ascending order of the
// parcel centroid's y coordinate, so ids are stable across reruns.
func renumberByCentroidY(verts []mgl64.Vec3, labels []int, k int) []int {
	sumY := make([]float64, k+1)
	count := make([]int, k+1)
	for i, l := range labels {
		if l < 1 || l > k {
			continue
		}
		sumY[l] += verts[i].Y()
		count[l]++
	}

	order := make([]int, 0, k)
	for l := 1; l <= k; l++ {
		if count[l] > 0 {
			order = append(order, l)
		}
	}
	sort.Slice(order, func(i, j int) bool {
		return sumY[order[i]]/float64(count[order[i]]) < sumY[order[j]]/float64(count[order[j]])
	})

	remap := make([]int, k+1)
	for newID, oldID := range order {
		remap[oldID] = newID + 1
	}
	out := make([]int, len(labels))
	for i, l := range labels {
		if l >= 1 && l <= k {
			out[i] = remap[l]
		}
	}
	return out
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: cortexmorph info <mesh.obj> [...]")
		os.Exit(1)
	}

	for _, path := range args {
		mesh, err := geom.LoadOBJ(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		min, max := mesh.Bounds()
		ext := max.Sub(min)
		fmt.Printf("Mesh:     %s\n", path)
		fmt.Printf("Vertices: %d\n", len(mesh.Verts))
		fmt.Printf("Faces:    %d\n", len(mesh.Faces))
		fmt.Printf("Bounds:   [%.3f %.3f %.3f] .. [%.3f %.3f %.3f]\n",
			min.X(), min.Y(), min.Z(), max.X(), max.Y(), max.Z())
		fmt.Printf("Extent:   %.3f x %.3f x %.3f\n", ext.X(), ext.Y(), ext.Z())
		fmt.Println()
	}
}
