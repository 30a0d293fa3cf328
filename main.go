package main

import (
	"cellgrid/grid"
	ownIo "cellgrid/io"
	"cellgrid/tile"
	"cellgrid/web"
	"fmt"
	"github.com/alecthomas/kong"
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
	"io"
	"os"
	"strings"
)

const VERSION = "v0.1.0"

var cli struct {
	Logging string      `help:"Logging verbosity." enum:"info,debug,trace" short:"l" default:"info"`
	Version VersionFlag `help:"Print version information and quit" name:"version" short:"v"`
	Cells   struct {
		Input    string  `help:"The input file. Either GeoJSON, .osm or .osm.pbf." placeholder:"<input-file>" arg:"" type:"existingfile"`
		Profile  string  `help:"The grid profile to use." enum:"fine-offset,coarse-aligned,one-degree" short:"p" default:"fine-offset"`
		CellSize float64 `help:"Overrides the cell size of the profile. Values <= 0 keep the cell size of the profile." name:"cell-size" default:"0"`
		Offset   float64 `help:"Overrides the offset of the profile. Negative values keep the offset of the profile." default:"-1"`
		Round    int     `help:"Computes centerpoints rounded to this many digits (-1 = no rounding). Values below -1 keep the setting of the profile." default:"-2"`
		Workers  int     `help:"Number of goroutines checking cells for intersections." short:"w" default:"1"`
		Output   string  `help:"The output GeoJSON file. Writes to stdout when not set." short:"o" type:"path"`
	} `cmd:"" help:"Writes all grid cells intersecting the input geometry as GeoJSON."`
	Quads struct {
		Input string `help:"The input file. Either GeoJSON, .osm or .osm.pbf." placeholder:"<input-file>" arg:"" type:"existingfile"`
	} `cmd:"" help:"Prints the IDs of all topo quads (grouped by degree block) intersecting the input geometry."`
	Elevation struct {
		Input string `help:"The input file. Either GeoJSON, .osm or .osm.pbf." placeholder:"<input-file>" arg:"" type:"existingfile"`
	} `cmd:"" help:"Prints the names of all elevation tile archives intersecting the input geometry."`
	Server struct {
		Port string `help:"The port this server should listen to." short:"p" default:"8080"`
		Cert string `help:"The certificate file. Enables TLS when set together with --key." type:"existingfile"`
		Key  string `help:"The key file of the certificate." type:"existingfile"`
	} `cmd:"" help:"Starts the HTTP API."`
}

type VersionFlag string

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}

func main() {
	ctx := kong.Parse(
		&cli,
		kong.Name("cellgrid"),
		kong.Description("Finds the regular grid cells covering a geometry."),
		kong.Vars{
			"version": VERSION,
		},
	)

	if strings.ToLower(cli.Logging) == "debug" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_DEBUG)
	} else if strings.ToLower(cli.Logging) == "trace" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_TRACE)
	} else if strings.ToLower(cli.Logging) == "info" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_INFO)
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
	} else {
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
		sigolo.Fatalf("Unknown logging level '%s'", cli.Logging)
	}

	switch ctx.Command() {
	case "cells <input>":
		profile, err := grid.ProfileByName(cli.Cells.Profile)
		sigolo.FatalCheck(err)
		profile = overrideProfile(profile)

		collection, err := applyToFile(cli.Cells.Input, profile, cli.Cells.Workers)
		sigolo.FatalCheck(err)

		err = writeOutput(cli.Cells.Output, func(writer io.Writer) error {
			return ownIo.WriteCollectionAsGeoJson(collection, profile.RoundDigits, writer)
		})
		sigolo.FatalCheck(err)
	case "quads <input>":
		collection, err := applyToFile(cli.Quads.Input, grid.CoarseAlignedGrid, 1)
		sigolo.FatalCheck(err)

		blocks := tile.NewQuadBlocks(collection.Cells)
		for _, blockId := range blocks.BlockIds() {
			sigolo.Debugf("Block %s has %d quads", blockId, len(blocks[blockId]))
		}

		err = ownIo.WriteQuadBlocksAsJson(blocks, os.Stdout)
		sigolo.FatalCheck(err)
		fmt.Println()
	case "elevation <input>":
		collection, err := applyToFile(cli.Elevation.Input, grid.OneDegreeGrid, 1)
		sigolo.FatalCheck(err)

		for _, archive := range tile.ElevationArchives(collection.Cells) {
			fmt.Println(archive)
		}
	case "server":
		if cli.Server.Cert != "" && cli.Server.Key != "" {
			web.StartServerTls(cli.Server.Port, cli.Server.Cert, cli.Server.Key)
		} else {
			web.StartServer(cli.Server.Port)
		}
	default:
		sigolo.Errorf("Unknown command '%s'", ctx.Command())
	}
}

func overrideProfile(profile grid.Profile) grid.Profile {
	if cli.Cells.CellSize > 0 {
		profile.Name = "custom"
		profile.CellSize = cli.Cells.CellSize
	}
	if cli.Cells.Offset >= 0 {
		profile.Name = "custom"
		profile.Offset = cli.Cells.Offset
	}
	if cli.Cells.Round >= grid.NoRounding {
		profile.RoundDigits = cli.Cells.Round
		profile.WithCentroids = true
	}
	return profile
}

func applyToFile(inputFile string, profile grid.Profile, workers int) (*grid.Collection, error) {
	orbGeometry, err := ownIo.ReadGeometryFile(inputFile)
	if err != nil {
		return nil, err
	}

	geometry, err := grid.NewGeometry(orbGeometry)
	if err != nil {
		return nil, errors.Wrapf(err, "Unsupported geometry in input file %s", inputFile)
	}

	if workers > 1 {
		return profile.ApplyConcurrent(geometry, workers)
	}
	return profile.Apply(geometry)
}

func writeOutput(outputFile string, write func(writer io.Writer) error) error {
	if outputFile == "" {
		return write(os.Stdout)
	}

	file, err := os.Create(outputFile)
	if err != nil {
		return errors.Wrapf(err, "Unable to create output file %s", outputFile)
	}

	err = write(file)
	if err != nil {
		file.Close()
		return err
	}

	return errors.Wrapf(file.Close(), "Unable to close output file %s", outputFile)
}
