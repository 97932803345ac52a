package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/cactusdynamics/sensordash"
	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Host        string `long:"host" default:"127.0.0.1" description:"address to listen on"`
	Port        uint16 `short:"p" long:"port" default:"8050" description:"port to listen on"`
	Debug       bool   `short:"d" long:"debug" description:"enable debug logging"`
	Seed        uint64 `long:"seed" default:"0" description:"seed for the sample data, 0 picks one from the clock"`
	Points      int    `short:"n" long:"points" default:"100" description:"number of samples per series"`
	AssetsHost  string `long:"assets-host" description:"URL prefix echarts assets are loaded from (defaults to the go-echarts CDN)"`
	OpenBrowser bool   `long:"open-browser" description:"open the dashboard in a browser once the server is up"`
}

// parseOptions parses args (without the program name). When the process
// should stop, ok is false and code is the exit status: 0 for --help, 1 for
// anything go-flags rejected.
func parseOptions(args []string) (options Options, code int, ok bool) {
	parser := flags.NewParser(&options, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return options, 0, false
		}
		return options, 1, false
	}

	return options, 0, true
}

func main() {
	options, code, ok := parseOptions(os.Args[1:])
	if !ok {
		os.Exit(code)
	}

	if options.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	generatorOptions := sensordash.DefaultGeneratorOptions()
	generatorOptions.Points = options.Points
	generatorOptions.Seed = options.Seed

	dataset, err := sensordash.Generate(generatorOptions)
	if err != nil {
		logrus.WithError(err).Fatal("failed to generate sample data")
	}

	panels := sensordash.DefaultPanels
	if err := sensordash.ValidatePanels(dataset, panels); err != nil {
		logrus.WithError(err).Fatal("panel configuration does not match the dataset")
	}

	pageOptions := sensordash.DefaultPageOptions()
	pageOptions.AssetsHost = options.AssetsHost

	server := sensordash.NewHttpServer(dataset, panels, options.Host, options.Port, pageOptions, sensordash.NewMetrics())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, options.OpenBrowser); err != nil {
		logrus.WithError(err).Fatal("HTTP server failed")
	}
}
