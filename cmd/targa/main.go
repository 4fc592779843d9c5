package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/targa"
	"github.com/bodgit/targa/palette"
	"github.com/bodgit/targa/tga"
	"github.com/urfave/cli/v2"
)

const defaultDB = "targa.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func writePNG(file string, m image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, m); err != nil {
		return err
	}
	return f.Close()
}

func reduce(c *cli.Context, g *tga.Grid) (image.Image, error) {
	if n := c.Int("colors"); n > 0 {
		return palette.Reduce(g.NRGBA(), n)
	}
	return g.NRGBA(), nil
}

func main() {
	app := cli.NewApp()

	app.Name = "targa"
	app.Usage = "Truevision TGA decoding and cataloguing utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"TARGA_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	colorsFlag := &cli.IntFlag{
		Name:  "colors",
		Usage: fmt.Sprintf("reduce to at most this many colors (%d-%d)", palette.MinColors, palette.MaxColors),
	}

	app.Commands = []*cli.Command{
		{
			Name:      "info",
			Usage:     "Print the header of a TGA file",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				b, err := ioutil.ReadFile(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				h, err := tga.DecodeHeader(b)
				if err != nil {
					return cli.Exit(err, 1)
				}

				fmt.Printf("Type:   %s\n", h.Type)
				fmt.Printf("Width:  %d\n", h.Width)
				fmt.Printf("Height: %d\n", h.Height)
				fmt.Printf("Depth:  %d\n", h.Depth)

				return nil
			},
		},
		{
			Name:      "convert",
			Usage:     "Convert a TGA file to PNG",
			ArgsUsage: "FILE OUTPUT",
			Flags:     []cli.Flag{colorsFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				b, err := ioutil.ReadFile(c.Args().Get(0))
				if err != nil {
					return cli.Exit(err, 1)
				}

				g, err := tga.DecodeBytes(b)
				if err != nil {
					return cli.Exit(err, 1)
				}

				m, err := reduce(c, g)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := writePNG(c.Args().Get(1), m); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "scan",
			Usage:     "Scan filesystem and catalogue TGA images",
			ArgsUsage: "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				t, err := targa.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer t.Close()

				if err := t.Scan(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "list",
			Usage: "List catalogued images",
			Action: func(c *cli.Context) error {
				t, err := targa.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer t.Close()

				entries, err := t.Catalog().List()
				if err != nil {
					return cli.Exit(err, 1)
				}

				for _, e := range entries {
					paths, err := t.Catalog().Paths(e.SHA1)
					if err != nil {
						return cli.Exit(err, 1)
					}
					fmt.Printf("%s %5dx%-5d %2d-bit %s\n", e.SHA1, e.Width, e.Height, e.Depth, e.Type)
					for _, p := range paths {
						fmt.Printf("\t%s\n", p)
					}
				}

				return nil
			},
		},
		{
			Name:      "export",
			Usage:     "Write a catalogued image to PNG",
			ArgsUsage: "SHA1 OUTPUT",
			Flags:     []cli.Flag{colorsFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				t, err := targa.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer t.Close()

				g, err := t.Catalog().Grid(c.Args().Get(0))
				if err != nil {
					return cli.Exit(err, 1)
				}
				if g == nil {
					return cli.Exit(errors.New("no such image"), 1)
				}

				m, err := reduce(c, g)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := writePNG(c.Args().Get(1), m); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
