package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/imageio"
	"github.com/df07/go-weekend-raytracer/pkg/log"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

var logger = log.New("raytracer")

func main() {
	app := cli.NewApp()
	app.Name = "raytracer"
	app.Usage = "render scenes from Ray Tracing in One Weekend"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image file",
			Description: `Render a built-in scene and write it as PNG, BMP or plain PPM.

When --out is omitted the image is written to output/<scene>/render_<timestamp>.<format>.
When --format is omitted it is taken from the --out extension, falling back to png.`,
			Flags: []cli.Flag{
				cli.IntFlag{Name: "height", Value: 225, Usage: "image height", EnvVar: "RAYTRACER_HEIGHT"},
				cli.IntFlag{Name: "width", Value: 400, Usage: "image width", EnvVar: "RAYTRACER_WIDTH"},
				cli.IntFlag{Name: "spp", Value: 100, Usage: "samples per pixel", EnvVar: "RAYTRACER_SPP"},
				cli.IntFlag{Name: "depth", Value: 50, Usage: "maximum ray bounce depth", EnvVar: "RAYTRACER_DEPTH"},
				cli.StringFlag{Name: "scene", Value: scene.DefaultSceneName, Usage: "built-in scene name", EnvVar: "RAYTRACER_SCENE"},
				cli.Int64Flag{Name: "seed", Value: renderer.DefaultSeed, Usage: "random seed for the scene and samplers", EnvVar: "RAYTRACER_SEED"},
				cli.IntFlag{Name: "workers", Value: 0, Usage: "tile goroutines (0 = CPU count)", EnvVar: "RAYTRACER_WORKERS"},
				cli.StringFlag{Name: "format", Usage: "output format: png, bmp or ppm", EnvVar: "RAYTRACER_FORMAT"},
				cli.StringFlag{Name: "out, o", Usage: "output file", EnvVar: "RAYTRACER_OUT"},
			},
			Action: renderScene,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: listScenes,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// renderScene implements the render command
func renderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	sceneName := ctx.String("scene")
	path, format, err := resolveOutput(ctx.String("out"), ctx.String("format"), sceneName, time.Now())
	if err != nil {
		return err
	}

	opts := renderer.Options{
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		MaxDepth:        ctx.Int("depth"),
		SceneName:       sceneName,
		Seed:            ctx.Int64("seed"),
		NumWorkers:      ctx.Int("workers"),
	}

	// Ctrl-C cancels the remaining tiles
	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stats, err := renderToFile(renderCtx, opts, format, path)
	if err != nil {
		return err
	}

	logger.Noticef("render statistics\n%s", renderer.StatsTable(stats))
	logger.Noticef("Render saved as %s", path)
	return nil
}

// resolveOutput picks the output path and format. An explicit format wins,
// then the path extension, then png.
func resolveOutput(out, formatName, sceneName string, now time.Time) (string, imageio.Format, error) {
	if formatName == "" && out != "" {
		formatName = filepath.Ext(out)
	}
	if formatName == "" {
		formatName = string(imageio.PNG)
	}

	format, err := imageio.ParseFormat(formatName)
	if err != nil {
		return "", "", err
	}

	if out == "" {
		if sceneName == "" {
			sceneName = scene.DefaultSceneName
		}
		timestamp := now.Format("20060102_150405")
		out = filepath.Join("output", sceneName, fmt.Sprintf("render_%s.%s", timestamp, format))
	}

	return out, format, nil
}

// renderToFile renders with opts and writes the image to path
func renderToFile(ctx context.Context, opts renderer.Options, format imageio.Format, path string) (renderer.RenderStats, error) {
	img, stats, err := renderer.Render(ctx, opts)
	if err != nil {
		return renderer.RenderStats{}, fmt.Errorf("render: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return stats, fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return stats, fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	if err := imageio.Encode(file, img, format); err != nil {
		return stats, fmt.Errorf("encoding %s: %w", format, err)
	}
	return stats, file.Close()
}

// listScenes implements the scenes command
func listScenes(ctx *cli.Context) error {
	setupLogging(ctx)
	fmt.Print(scenesTable())
	return nil
}

// scenesTable formats the built-in scenes as a text table
func scenesTable() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Scene", "Name", "Objects", "Description"})
	for _, info := range scene.List() {
		objects := "-"
		if s, err := scene.New(info.ID, scene.DefaultSeed); err == nil {
			objects = fmt.Sprintf("%d", s.GetPrimitiveCount())
		}
		table.Append([]string{info.ID, info.DisplayName, objects, info.Description})
	}
	table.Render()
	return strings.TrimRight(buf.String(), "\n") + "\n"
}
