package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/ironsheep/isoline/internal/config"
	"github.com/ironsheep/isoline/internal/isoline"
	"github.com/ironsheep/isoline/internal/raster"
	"github.com/ironsheep/isoline/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1 // I/O, asset or allocation failure
	exitUsage   = 2 // bad arguments; nothing was written
)

func main() {
	// Handle --version and --help before flag parsing
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("isoline %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp(os.Stdout)
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol in --serve mode)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if os.Getenv("ISOLINE_LOG_LEVEL") == "debug" {
		isoline.SetDebug(true)
		log.Printf("isoline v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	os.Exit(run(os.Args[1:], os.Stderr))
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "isoline - draw marching-squares contours onto a rescaled image")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: isoline [options] <input> <output> <threads>")
	fmt.Fprintln(w, "       isoline [options] --serve")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -config file         YAML configuration (default $"+config.EnvPath+")")
	fmt.Fprintln(w, "  -atlas dir           Contour patterns 0.ppm..15.ppm (default built-in)")
	fmt.Fprintln(w, "  -init-config file    Write a default configuration file and exit")
	fmt.Fprintln(w, "  -export-atlas dir    Write the configured contour patterns and exit")
	fmt.Fprintln(w, "  --serve              Run as an MCP server over stdin/stdout")
	fmt.Fprintln(w, "  --version, -v        Print version information")
	fmt.Fprintln(w, "  --help, -h           Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input formats: ppm, pnm, png, jpeg, gif, bmp, tiff, webp; output formats:")
	fmt.Fprintln(w, "ppm, pnm, png, jpeg, bmp. Either may carry a .zst suffix.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  ISOLINE_LOG_LEVEL=debug    Enable debug logging and phase timings")
	fmt.Fprintln(w, "  "+config.EnvPath+"=file      Configuration file used when -config is absent")
}

// run executes the command line in args and returns the process exit code.
func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("isoline", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printHelp(stderr) }

	configPath := fs.String("config", os.Getenv(config.EnvPath), "YAML configuration file")
	atlasDir := fs.String("atlas", "", "directory holding contour patterns 0.ppm..15.ppm")
	initConfig := fs.String("init-config", "", "write a default configuration file and exit")
	exportAtlas := fs.String("export-atlas", "", "write the configured contour patterns to a directory and exit")
	serve := fs.Bool("serve", false, "run as an MCP server on stdin/stdout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if *initConfig != "" {
		if err := config.CreateDefaultConfigFile(*initConfig); err != nil {
			log.Printf("Failed to write config: %v", err)
			return exitFailure
		}
		log.Printf("Wrote default configuration to %s", *initConfig)
		return exitOK
	}

	// Positional arguments are checked before anything touches the disk.
	var in, out string
	var threads int
	batch := !*serve && *exportAtlas == ""
	if batch {
		if fs.NArg() != 3 {
			fmt.Fprintf(stderr, "isoline: expected <input> <output> <threads>, got %d arguments\n", fs.NArg())
			fs.Usage()
			return exitUsage
		}
		in, out = fs.Arg(0), fs.Arg(1)
		n, err := strconv.Atoi(fs.Arg(2))
		if err != nil || n < 1 || n > isoline.MaxWorkers {
			fmt.Fprintf(stderr, "isoline: threads must be an integer in [1,%d], got %q\n", isoline.MaxWorkers, fs.Arg(2))
			return exitUsage
		}
		threads = n
		if !raster.CanEncode(out) {
			fmt.Fprintf(stderr, "isoline: unsupported output format %q\n", out)
			return exitUsage
		}
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return exitCode(err)
	}
	if *atlasDir != "" {
		cfg.AtlasDir = *atlasDir
	}

	switch {
	case *exportAtlas != "":
		err = exportContours(cfg, *exportAtlas)
	case *serve:
		err = server.New(cfg).Run()
	default:
		err = render(cfg, in, out, threads)
	}
	if err != nil {
		log.Printf("%v", err)
		return exitCode(err)
	}
	return exitOK
}

// render decodes in, runs the pipeline with threads workers and writes the
// contour image to out.
func render(cfg *config.Config, in, out string, threads int) error {
	pl, err := cfg.Pipeline()
	if err != nil {
		return err
	}

	src, err := raster.Decode(in)
	if err != nil {
		return err
	}

	res, err := pl.Run(src, threads, func(img *raster.Image) error {
		return raster.Encode(img, out)
	})
	if err != nil {
		return err
	}

	log.Printf("Rendered %s (%dx%d) to %s (%dx%d) with %d threads in %v",
		in, src.Width, src.Height, out, res.Image.Width, res.Image.Height, threads, res.Elapsed)
	return nil
}

func exportContours(cfg *config.Config, dir string) error {
	at, err := cfg.LoadAtlas()
	if err != nil {
		return err
	}
	if err := at.Save(dir); err != nil {
		return err
	}
	log.Printf("Wrote %dx%d contour patterns to %s", at.StepX, at.StepY, dir)
	return nil
}

// exitCode maps err to the process exit status.
func exitCode(err error) int {
	if errors.Is(err, isoline.ErrUsage) {
		return exitUsage
	}
	return exitFailure
}
