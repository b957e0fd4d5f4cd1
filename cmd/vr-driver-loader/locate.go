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
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/NVIDIA/vr-driver-loader/internal/locate"
)

// newLocateCommand constructs a command that only reports where the driver
// and its config directories are, without loading it.
func newLocateCommand(cfg *Config) *cli.Command {
	return &cli.Command{
		Name:  "locate",
		Usage: "Print the location of the driver and its config directories",
		Action: func(c *cli.Context) error {
			return locateDriver(c, cfg)
		},
	}
}

func locateDriver(c *cli.Context, cfg *Config) error {
	config, err := cfg.loadConfig(c)
	if err != nil {
		return fmt.Errorf("unable to load config: %v", err)
	}

	loc := locate.New(locateOptions(config)...).Locate()
	if !loc.Found {
		fmt.Printf("Could not find the native %v driver\n", loc.DriverName)
		return cli.Exit("", 1)
	}

	fmt.Printf("Driver:           %v\n", loc.DriverFile)
	fmt.Printf("Driver root:      %v\n", loc.DriverRoot)
	fmt.Printf("Runtime:          %v\n", loc.RuntimeDir)
	fmt.Printf("Steam root:       %v\n", loc.SteamRoot)

	dirs := locate.ResolveConfigDirs(loc)
	if !dirs.Valid {
		fmt.Println("Config dirs:      not found")
		return nil
	}
	fmt.Printf("Config dir:       %v\n", dirs.RootConfigDir)
	fmt.Printf("Driver config:    %v\n", dirs.DriverConfigDir)
	return nil
}
