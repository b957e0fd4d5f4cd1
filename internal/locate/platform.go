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
	"os"
	"path/filepath"
)

// platform identifies the OS and architecture a driver binary is built for.
type platform struct {
	goos   string
	goarch string
}

// binDir returns the name of the per-platform directory under a driver's bin
// directory.
func (p platform) binDir() string {
	bits := "64"
	switch p.goarch {
	case "386", "arm":
		bits = "32"
	}
	switch p.goos {
	case "windows":
		return "win" + bits
	case "darwin":
		return "osx32"
	default:
		return "linux" + bits
	}
}

// libraryExt returns the shared library file extension for the platform.
func (p platform) libraryExt() string {
	switch p.goos {
	case "windows":
		return ".dll"
	case "darwin":
		return ".dylib"
	default:
		return ".so"
	}
}

// driverFile returns the path of the named driver within a runtime directory.
func (p platform) driverFile(runtimeDir, name string) string {
	return filepath.Join(runtimeDir, "drivers", name, "bin", p.binDir(), "driver_"+name+p.libraryExt())
}

// defaultSteamRoots returns the conventional Steam installation directories
// for the platform.
func (p platform) defaultSteamRoots() []string {
	home, _ := os.UserHomeDir()
	switch p.goos {
	case "windows":
		return []string{
			filepath.Join(os.Getenv("ProgramFiles(x86)"), "Steam"),
			filepath.Join(os.Getenv("ProgramFiles"), "Steam"),
		}
	case "darwin":
		return []string{
			filepath.Join(home, "Library", "Application Support", "Steam"),
		}
	default:
		return []string{
			filepath.Join(home, ".steam", "steam"),
			filepath.Join(home, ".steam", "root"),
			filepath.Join(home, ".local", "share", "Steam"),
		}
	}
}

// defaultPathRegistry returns the location of the OpenVR path registry file.
func (p platform) defaultPathRegistry() string {
	home, _ := os.UserHomeDir()
	switch p.goos {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "openvr", pathRegistryFile)
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "OpenVR", ".openvr", pathRegistryFile)
	default:
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			configHome = filepath.Join(home, ".config")
		}
		return filepath.Join(configHome, "openvr", pathRegistryFile)
	}
}
