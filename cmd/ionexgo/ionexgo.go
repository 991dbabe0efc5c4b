// Command-line tool for handling IONEX files.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/de-bkg/goionex/pkg/ionex"
	"github.com/paulmach/orb"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Version:   "v0.1.0",
		Compiled:  time.Now(),
		HelpName:  "ionexgo",
		Usage:     "one more IONEX toolkit",
		ArgsUsage: "[args and such]",
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "Print the header of an IONEX file",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						fmt.Fprintf(c.App.Writer, "ERROR: info needs one file\n\n")
						cli.ShowCommandHelpAndExit(c, "info", 1)
					}
					return printInfo(c.Args().Get(0))
				},
			},
			{
				Name:      "merge",
				Usage:     "Merge two IONEX files",
				ArgsUsage: "<file1> <file2> <out>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 3 {
						fmt.Fprintf(c.App.Writer, "ERROR: merge needs two input files and one output file\n\n")
						cli.ShowCommandHelpAndExit(c, "merge", 1)
					}
					return merge(c.Args().Get(0), c.Args().Get(1), c.Args().Get(2))
				},
			},
			{
				Name:      "crop",
				Usage:     "Reduce an IONEX file to a rectangular region",
				ArgsUsage: "<file> <lon1> <lat1> <lon2> <lat2> <out>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 6 {
						fmt.Fprintf(c.App.Writer, "ERROR: crop needs a file, four bounds and an output file\n\n")
						cli.ShowCommandHelpAndExit(c, "crop", 1)
					}
					bounds := make([]float64, 4)
					for i := range bounds {
						f, err := strconv.ParseFloat(c.Args().Get(i+1), 64)
						if err != nil {
							return fmt.Errorf("parse bound %q: %w", c.Args().Get(i+1), err)
						}
						bounds[i] = f
					}
					return crop(c.Args().Get(0), bounds, c.Args().Get(5))
				},
			},
			{
				Name:      "decompress",
				Usage:     "Decompress a gzip compressed IONEX file",
				ArgsUsage: "<file.gz>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						fmt.Fprintf(c.App.Writer, "ERROR: decompress needs one file\n\n")
						cli.ShowCommandHelpAndExit(c, "decompress", 1)
					}
					path, err := ionex.DecompressFile(c.Args().Get(0))
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, path)
					return nil
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func printInfo(path string) error {
	ionx, err := ionex.ParseFile(path)
	if err != nil {
		return err
	}

	hdr := ionx.Header
	fmt.Printf("version:          %s\n", hdr.Version)
	fmt.Printf("program:          %s\n", hdr.Program)
	fmt.Printf("run by:           %s\n", hdr.RunBy)
	fmt.Printf("date:             %s\n", hdr.Date)
	fmt.Printf("reference system: %s\n", hdr.ReferenceSystem)
	fmt.Printf("mapping function: %s\n", hdr.MappingFunction)
	fmt.Printf("map dimension:    %d\n", hdr.MapDimension)
	fmt.Printf("number of maps:   %d\n", hdr.NumberOfMaps)
	fmt.Printf("first map:        %s\n", hdr.EpochOfFirstMap.Format(time.RFC3339))
	fmt.Printf("last map:         %s\n", hdr.EpochOfLastMap.Format(time.RFC3339))
	fmt.Printf("interval:         %s\n", hdr.SamplingPeriod)
	fmt.Printf("latitude:         (%g, %g, %g)\n", hdr.Grid.Latitude.Start, hdr.Grid.Latitude.End, hdr.Grid.Latitude.Spacing)
	fmt.Printf("longitude:        (%g, %g, %g)\n", hdr.Grid.Longitude.Start, hdr.Grid.Longitude.End, hdr.Grid.Longitude.Spacing)
	fmt.Printf("altitude:         (%g, %g, %g)\n", hdr.Grid.Altitude.Start, hdr.Grid.Altitude.End, hdr.Grid.Altitude.Spacing)
	fmt.Printf("exponent:         %d\n", hdr.Exponent)
	fmt.Printf("estimates:        %d\n", ionx.Record.Len())
	for _, comment := range hdr.Comments {
		fmt.Printf("comment:          %s\n", comment)
	}

	return nil
}

func merge(path1, path2, out string) error {
	ionx1, err := ionex.ParseFile(path1)
	if err != nil {
		return err
	}
	ionx2, err := ionex.ParseFile(path2)
	if err != nil {
		return err
	}

	merged, err := ionx1.Merge(ionx2)
	if err != nil {
		return err
	}
	return merged.WriteFile(out)
}

func crop(path string, bounds []float64, out string) error {
	ionx, err := ionex.ParseFile(path)
	if err != nil {
		return err
	}

	lon1, lat1, lon2, lat2 := bounds[0], bounds[1], bounds[2], bounds[3]
	polygon := orb.Polygon{{
		{lon1, lat1}, {lon2, lat1}, {lon2, lat2}, {lon1, lat2}, {lon1, lat1},
	}}

	regional, err := ionx.ToRegional(polygon)
	if err != nil {
		return err
	}
	return regional.WriteFile(out)
}
