/**
# Copyright 2024 NVIDIA CORPORATION
#
# Licensed under the Apache License, Version 2.0 (the "License");
# you may not use this file except in compliance with the License.
# You may obtain a copy of the License at
#
#     http://www.apache.org/licenses/LICENSE-2.0
#
# Unless required by applicable law or agreed to in writing, software
# distributed under the License is distributed on an "AS IS" BASIS,
# WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
# See the License for the specific language governing permissions and
# limitations under the License.
**/

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/NVIDIA/vr-driver-loader/internal/driver"
	"github.com/NVIDIA/vr-driver-loader/internal/info"
	"github.com/NVIDIA/vr-driver-loader/internal/loader"
	"github.com/NVIDIA/vr-driver-loader/internal/locate"
	"github.com/NVIDIA/vr-driver-loader/internal/logger"
	"github.com/NVIDIA/vr-driver-loader/internal/watch"

	spec "github.com/NVIDIA/vr-driver-loader/api/config/v1"
)

// Config represents a collection of config options for the driver loader.
type Config struct {
	configFile string
	verbosity  int

	// flags stores the CLI flags for later processing.
	flags []cli.Flag
}

func main() {
	config := &Config{}

	c := cli.NewApp()
	c.Name = "VR Driver Loader"
	c.Usage = "Locate, load and run a native VR tracking driver"
	c.Version = info.GetVersionString()
	c.Before = func(ctx *cli.Context) error {
		return config.initLogging()
	}
	c.Action = func(ctx *cli.Context) error {
		klog.InfoS("Starting "+ctx.App.Name, "version", ctx.App.Version)
		return start(ctx, config)
	}
	c.Commands = []*cli.Command{
		newLocateCommand(config),
	}

	config.flags = []cli.Flag{
		&cli.StringSliceFlag{
			Name:    spec.FlagSteamRoot,
			Usage:   "additional Steam installation roots to search for the driver, searched before the default locations",
			EnvVars: []string{"VR_STEAM_ROOT"},
		},
		&cli.StringFlag{
			Name:    spec.FlagDriverName,
			Value:   spec.DefaultDriverName,
			Usage:   "the name of the driver to load (the folder under the runtime's drivers directory)",
			EnvVars: []string{"VR_DRIVER_NAME"},
		},
		&cli.StringFlag{
			Name:    spec.FlagPathRegistry,
			Usage:   "the path of the openvrpaths.vrpath registry (defaults to the per-user location)",
			EnvVars: []string{"VR_PATH_REGISTRY"},
		},
		&cli.BoolFlag{
			Name:    spec.FlagFailOnInitError,
			Value:   true,
			Usage:   "fail the loader if the driver could not be loaded or started. If set to false the loader waits for a restart instead",
			EnvVars: []string{"VR_FAIL_ON_INIT_ERROR"},
		},
		&cli.BoolFlag{
			Name:    spec.FlagDeactivateOnShutdown,
			Value:   true,
			Usage:   "deactivate all devices when shutting down",
			EnvVars: []string{"VR_DEACTIVATE_ON_SHUTDOWN"},
		},
		&cli.BoolFlag{
			Name:    spec.FlagStartProvider,
			Usage:   "start the server device provider and run it until interrupted",
			EnvVars: []string{"VR_START_PROVIDER"},
		},
		&cli.GenericFlag{
			Name:    spec.FlagRunFrameInterval,
			Value:   spec.NewDurationValue(spec.DefaultRunFrameInterval),
			Usage:   "the interval at which the provider's RunFrame is called. Set to 'infinite' to disable polling",
			EnvVars: []string{"VR_RUN_FRAME_INTERVAL"},
		},
		&cli.BoolFlag{
			Name:    spec.FlagWatchDriver,
			Usage:   "restart when the driver module is reinstalled",
			EnvVars: []string{"VR_WATCH_DRIVER"},
		},
		&cli.StringFlag{
			Name:        spec.FlagConfigFile,
			Usage:       "the path to a config file as an alternative to command line options or environment variables",
			Destination: &config.configFile,
			EnvVars:     []string{"CONFIG_FILE"},
		},
		&cli.IntFlag{
			Name:        "v",
			Usage:       "log verbosity",
			Destination: &config.verbosity,
			EnvVars:     []string{"VR_LOG_VERBOSITY"},
		},
	}
	c.Flags = config.flags

	err := c.Run(os.Args)
	if err != nil {
		klog.Error(err)
		os.Exit(1)
	}
}

func validateFlags(config *spec.Config) error {
	if *config.Flags.DriverName == "" {
		return fmt.Errorf("invalid --%v option: driver name must not be empty", spec.FlagDriverName)
	}
	if filepath.Base(*config.Flags.DriverName) != *config.Flags.DriverName {
		return fmt.Errorf("invalid --%v option: %q is not a plain name", spec.FlagDriverName, *config.Flags.DriverName)
	}
	return nil
}

// loadConfig loads the config from the config file and command line.
func (cfg *Config) loadConfig(c *cli.Context) (*spec.Config, error) {
	config, err := spec.NewConfig(c, cfg.flags)
	if err != nil {
		return nil, fmt.Errorf("unable to finalize config: %w", err)
	}
	err = validateFlags(config)
	if err != nil {
		return nil, fmt.Errorf("unable to validate flags: %w", err)
	}

	return config, nil
}

// locateOptions translates the config into options for the driver locator.
func locateOptions(config *spec.Config) []locate.Option {
	opts := []locate.Option{
		locate.WithDriverName(*config.Flags.DriverName),
		locate.WithSteamRoots(*config.Flags.SteamRoots...),
	}
	if registry := *config.Flags.PathRegistry; registry != "" {
		opts = append(opts, locate.WithPathRegistry(registry))
	}
	return opts
}

// sessionOptions translates the config into options for a driver session.
func sessionOptions(config *spec.Config) []driver.Option {
	return []driver.Option{
		driver.WithLocateOptions(locateOptions(config)...),
		driver.WithLogger(logger.ToKlog),
	}
}

func start(c *cli.Context, cfg *Config) error {
	klog.Info("Loading configuration.")
	config, err := cfg.loadConfig(c)
	if err != nil {
		return fmt.Errorf("unable to load config: %v", err)
	}

	// Print the config to the output.
	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config to JSON: %v", err)
	}
	klog.Infof("\nRunning with config:\n%v", string(configJSON))

	klog.Info("Starting OS watcher.")
	sigs := watch.Signals(syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var session *driver.Session
	var watcher *fsnotify.Watcher
	var ticker *time.Ticker
	defer func() {
		stopTicker(ticker)
		closeWatcher(watcher)
		closeSession(session)
	}()

restart:
	// If we are restarting, release the session from the previous run.
	stopTicker(ticker)
	ticker = nil
	closeWatcher(watcher)
	watcher = nil
	closeSession(session)
	session = nil

	klog.Info("Starting driver session.")
	session, err = startSession(config)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	var events <-chan fsnotify.Event
	var watchErrors <-chan error
	if *config.Flags.Provider.WatchDriver {
		watcher, err = watch.Files(filepath.Dir(session.DriverFile()))
		if err != nil {
			return fmt.Errorf("failed to create FS watcher for %v: %v", session.DriverFile(), err)
		}
		events = watcher.Events
		watchErrors = watcher.Errors
	}

	var frames <-chan time.Time
	if interval := config.Flags.Provider.RunFrameInterval; session.Valid() && interval.Polls() {
		ticker = time.NewTicker(time.Duration(*interval))
		frames = ticker.C
	}

	// Start an infinite loop, waiting for several indicators to either run
	// a frame, trigger a restart of the session, or exit the program.
	for {
		select {
		case <-frames:
			session.RunFrame()

		// Detect a reinstall of the driver by watching for a newly created
		// driver module. When this occurs, restart the session.
		case event := <-events:
			if watch.IsCreated(event, session.DriverFile()) {
				klog.Infof("inotify: %s created, restarting.", session.DriverFile())
				goto restart
			}

		// Watch for any other fs errors and log them.
		case err := <-watchErrors:
			klog.Errorf("inotify: %s", err)

		// Watch for any signals from the OS. On SIGHUP, restart this loop,
		// restarting the session in the process. On all other signals, exit
		// the loop and exit the program.
		case s := <-sigs:
			switch s {
			case syscall.SIGHUP:
				klog.Info("Received SIGHUP, restarting.")
				goto restart
			default:
				klog.Infof("Received signal \"%v\", shutting down.", s)
				return nil
			}
		}
	}
}

// startSession creates a driver session and reports its state. A nil session
// with a nil error means there is nothing left to run.
func startSession(config *spec.Config) (*driver.Session, error) {
	session := driver.New(sessionOptions(config)...)
	if !*config.Flags.DeactivateOnShutdown {
		session.DisableDeactivateOnShutdown()
	}

	if !session.FoundDriver() {
		fmt.Printf("Could not find the native %v driver, exiting!\n", *config.Flags.DriverName)
		closeSession(session)
		return nil, cli.Exit("", 1)
	}
	fmt.Printf("Found the %v driver at %v\n", *config.Flags.DriverName, session.DriverFile())

	printStatus(session)

	if !session.HaveDriverLoaded() || !session.FoundConfigDirs() {
		err := session.Err()
		if err == nil {
			err = errors.New("driver config directories not found")
		}
		return initFailed(config, session, fmt.Errorf("driver not usable: %w", err))
	}

	if !*config.Flags.Provider.Start {
		closeSession(session)
		return nil, nil
	}

	fmt.Printf("Headset present: %v\n", session.IsHMDPresent())
	if !session.StartServerDeviceProvider() {
		return initFailed(config, session, fmt.Errorf("failed to start server device provider: %w", session.Err()))
	}
	fmt.Printf("Server device provider started with %d tracked device(s)\n", session.ServerDeviceProvider().TrackedDeviceCount())
	return session, nil
}

// initFailed either fails or keeps an inert session around so that the
// loader waits for a restart, depending on the fail-on-init-error flag.
func initFailed(config *spec.Config, session *driver.Session, err error) (*driver.Session, error) {
	if *config.Flags.FailOnInitError {
		closeSession(session)
		return nil, err
	}
	klog.Errorf("%v; waiting for a restart", err)
	return session, nil
}

func printStatus(session *driver.Session) {
	fmt.Printf("Driver loaded: %v\n", session.HaveDriverLoaded())
	if mapped, err := loader.Mapped(session.DriverFile()); err == nil {
		fmt.Printf("Driver module mapped: %v\n", mapped)
	}
	if session.FoundConfigDirs() {
		dirs := session.ConfigDirs()
		fmt.Printf("Config directory: %v\n", dirs.RootConfigDir)
		fmt.Printf("Driver config directory: %v\n", dirs.DriverConfigDir)
	} else {
		fmt.Println("Config directories: not found")
	}
}

func closeSession(session *driver.Session) {
	if session == nil {
		return
	}
	if err := session.Close(); err != nil {
		klog.Errorf("Error closing driver session %v: %v", session.ID(), err)
	}
}

func stopTicker(ticker *time.Ticker) {
	if ticker != nil {
		ticker.Stop()
	}
}

func closeWatcher(watcher *fsnotify.Watcher) {
	if watcher == nil {
		return
	}
	if err := watcher.Close(); err != nil {
		klog.Errorf("Error closing FS watcher: %v", err)
	}
}
