package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/achilleasa/prism/cmd"
)

// Flags shared by commands that read the render config section. Unset flags
// keep the value from the config file.
var renderFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "width",
		Usage: "frame width",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "frame height",
	},
	cli.IntFlag{
		Name:  "workers",
		Usage: "number of render workers (0 = one per CPU)",
	},
	cli.StringFlag{
		Name:  "scheduler",
		Usage: "block scheduler (naive or perfect)",
	},
}

// Flags that replace the scene file argument with a generated scene.
var randomSceneFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "random",
		Usage: "render this many random spheres instead of a scene file",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: 1,
		Usage: "random scene seed",
	},
}

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "prism"
	app.Usage = "render reflective scenes using bvh-accelerated ray tracing"
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
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load settings from a yaml config file",
		},
		cli.StringFlag{
			Name:  "log-file",
			Usage: "also write logs to a rotated log file",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "compile",
			Usage: "compile yaml scene descriptions into a binary compressed format",
			Description: `
Parse a scene description from a yaml file, expand squares and meshes into
triangles and package the frame buffers in a kernel-friendly format.

The compiled frame is written to a zip archive next to the input file which
can be supplied as an argument to the render command.`,
			ArgsUsage: "scene_file1.yaml scene_file2.yaml ...",
			Action:    cmd.CompileScene,
		},
		{
			Name:      "info",
			Usage:     "print scene information",
			ArgsUsage: "scene_file",
			Action:    cmd.ShowSceneInfo,
		},
		{
			Name:   "config",
			Usage:  "print the effective configuration",
			Flags:  renderFlags,
			Action: cmd.ShowConfig,
		},
		{
			Name:        "render",
			Usage:       "render scene",
			Description: `Render one or more frames. When rendering multiple frames the camera yaw is advanced by yaw-step degrees between frames.`,
			ArgsUsage:   "[scene_file]",
			Flags: append([]cli.Flag{
				cli.Float64Flag{
					Name:  "gamma",
					Usage: "output gamma (1 = linear)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "image filename for the rendered frame",
				},
				cli.IntFlag{
					Name:  "frames",
					Value: 1,
					Usage: "number of frames to render",
				},
				cli.Float64Flag{
					Name:  "yaw-step",
					Value: 10,
					Usage: "camera yaw increment in degrees between frames",
				},
			}, append(randomSceneFlags, renderFlags...)...),
			Action: cmd.RenderFrame,
		},
		{
			Name:        "debug",
			Usage:       "compare bvh traversal against a linear primitive scan",
			Description: `Trace every primary ray of a frame using both the bvh and a linear scan and report any pixels where the nearest hits differ.`,
			ArgsUsage:   "[scene_file]",
			Flags:       append(randomSceneFlags, renderFlags...),
			Action:      cmd.Debug,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}
