/*
 * Copyright (c) 2024, NVIDIA CORPORATION.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package v1

import (
	"fmt"

	cli "github.com/urfave/cli/v2"
)

// ptr returns a pointer to a copy of x.
func ptr[T any](x T) *T {
	return &x
}

// updateFromCLIFlag conditionally updates the config flag at 'pflag' to the value of the CLI flag with name 'flagName'
func updateFromCLIFlag[T any](pflag **T, c *cli.Context, flagName string) {
	if c.IsSet(flagName) || *pflag == (*T)(nil) {
		switch flag := any(pflag).(type) {
		case **string:
			*flag = ptr(c.String(flagName))
		case **[]string:
			*flag = ptr(c.StringSlice(flagName))
		case **bool:
			*flag = ptr(c.Bool(flagName))
		case **Duration:
			if v, ok := c.Generic(flagName).(*DurationValue); ok && v.Value != nil {
				*flag = ptr(*v.Value)
				break
			}
			*flag = ptr(Duration(c.Duration(flagName)))
		default:
			panic(fmt.Errorf("unsupported flag type for %v: %T", flagName, flag))
		}
	}
}

// Flags holds the full list of flags used to configure the driver loader.
type Flags struct {
	CommandLineFlags
}

// CommandLineFlags holds the list of command line flags used to configure the driver loader.
type CommandLineFlags struct {
	SteamRoots           *[]string                 `json:"steamRoots,omitempty"     yaml:"steamRoots,omitempty"`
	DriverName           *string                   `json:"driverName"               yaml:"driverName"`
	PathRegistry         *string                   `json:"vrpathRegistry,omitempty" yaml:"vrpathRegistry,omitempty"`
	FailOnInitError      *bool                     `json:"failOnInitError"          yaml:"failOnInitError"`
	DeactivateOnShutdown *bool                     `json:"deactivateOnShutdown"     yaml:"deactivateOnShutdown"`
	Provider             *ProviderCommandLineFlags `json:"provider,omitempty"       yaml:"provider,omitempty"`
}

// ProviderCommandLineFlags holds the list of command line flags specific to
// running the server device provider.
type ProviderCommandLineFlags struct {
	Start            *bool     `json:"start"            yaml:"start"`
	RunFrameInterval *Duration `json:"runFrameInterval" yaml:"runFrameInterval"`
	WatchDriver      *bool     `json:"watchDriver"      yaml:"watchDriver"`
}

// UpdateFromCLIFlags updates Flags from settings in the cli Flags if they are set.
func (f *Flags) UpdateFromCLIFlags(c *cli.Context, flags []cli.Flag) {
	for _, flag := range flags {
		for _, n := range flag.Names() {
			// Common flags
			switch n {
			case FlagSteamRoot:
				updateFromCLIFlag(&f.SteamRoots, c, n)
			case FlagDriverName:
				updateFromCLIFlag(&f.DriverName, c, n)
			case FlagPathRegistry:
				updateFromCLIFlag(&f.PathRegistry, c, n)
			case FlagFailOnInitError:
				updateFromCLIFlag(&f.FailOnInitError, c, n)
			case FlagDeactivateOnShutdown:
				updateFromCLIFlag(&f.DeactivateOnShutdown, c, n)
			}
			// Provider specific flags
			if f.Provider == nil {
				f.Provider = &ProviderCommandLineFlags{}
			}
			switch n {
			case FlagStartProvider:
				updateFromCLIFlag(&f.Provider.Start, c, n)
			case FlagRunFrameInterval:
				updateFromCLIFlag(&f.Provider.RunFrameInterval, c, n)
			case FlagWatchDriver:
				updateFromCLIFlag(&f.Provider.WatchDriver, c, n)
			}
		}
	}
}
