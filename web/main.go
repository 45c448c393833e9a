package main

import (
	"os"

	"github.com/df07/go-weekend-raytracer/pkg/log"
	"github.com/df07/go-weekend-raytracer/web/server"
	"github.com/urfave/cli"
)

var logger = log.New("web")

func main() {
	app := cli.NewApp()
	app.Name = "raytracer-web"
	app.Usage = "serve the raytracer render page"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "addr",
			Value:  "",
			Usage:  "address to listen on",
			EnvVar: "RAYTRACER_ADDR",
		},
		cli.IntFlag{
			Name:   "port, p",
			Value:  8080,
			Usage:  "port to serve on",
			EnvVar: "RAYTRACER_PORT",
		},
		cli.IntFlag{
			Name:   "workers",
			Value:  0,
			Usage:  "tile goroutines per render (0 = CPU count)",
			EnvVar: "RAYTRACER_WORKERS",
		},
		cli.StringFlag{
			Name:   "scene",
			Value:  "random",
			Usage:  "built-in scene to render",
			EnvVar: "RAYTRACER_SCENE",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Action = serve

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("Error starting server: %v", err)
		os.Exit(1)
	}
}

func serve(ctx *cli.Context) error {
	if ctx.Bool("v") {
		log.SetLevel(log.Info)
	}
	if ctx.Bool("vv") {
		log.SetLevel(log.Debug)
	}

	webServer := server.NewServer(server.Config{
		Addr:    ctx.String("addr"),
		Port:    ctx.Int("port"),
		Workers: ctx.Int("workers"),
		Scene:   ctx.String("scene"),
	})
	defer webServer.Close()

	logger.Noticef("Weekend Raytracer Web Server")
	logger.Noticef("Visit http://localhost:%d to start rendering", ctx.Int("port"))

	return webServer.Start()
}
