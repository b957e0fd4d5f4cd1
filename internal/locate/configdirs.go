/**
# Copyright (c) 2024, NVIDIA CORPORATION.  All rights reserved.
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

package locate

import (
	"path/filepath"

	"k8s.io/klog/v2"
)

// ConfigDirs holds the configuration directories associated with a driver.
type ConfigDirs struct {
	Valid bool
	// RootConfigDir is the runtime-wide configuration directory.
	RootConfigDir string
	// DriverConfigDir is the configuration directory of the driver itself.
	DriverConfigDir string
}

// ResolveConfigDirs computes the configuration directories for a located
// driver. Config directories listed in the path registry are preferred over
// the config folder of the Steam installation. The result is only valid if
// both directories exist. A location that was not found always yields an
// invalid result.
func ResolveConfigDirs(loc DriverLocation) ConfigDirs {
	if !loc.Found {
		return ConfigDirs{}
	}

	candidates := append([]string{}, loc.ConfigHints...)
	if loc.SteamRoot != "" {
		candidates = append(candidates, filepath.Join(loc.SteamRoot, "config"))
	}

	for _, root := range candidates {
		if root == "" || !isDir(root) {
			continue
		}
		driverConfigDir := filepath.Join(root, loc.DriverName)
		if !isDir(driverConfigDir) {
			klog.V(4).Infof("Config directory %v has no %v subdirectory", root, loc.DriverName)
			continue
		}
		return ConfigDirs{
			Valid:           true,
			RootConfigDir:   root,
			DriverConfigDir: driverConfigDir,
		}
	}

	return ConfigDirs{}
}
