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
	"runtime"

	"k8s.io/klog/v2"

	spec "github.com/NVIDIA/vr-driver-loader/api/config/v1"
)

// runtimeSubdirs are the locations of the VR runtime relative to a Steam root.
var runtimeSubdirs = []string{
	filepath.Join("steamapps", "common", "SteamVR"),
	filepath.Join("steamapps", "common", "OpenVR"),
	filepath.Join("SteamApps", "common", "SteamVR"),
}

// DriverLocation describes where a driver module was found.
// It is immutable once returned by a Locator.
type DriverLocation struct {
	Found bool
	// DriverRoot is the directory holding the driver module.
	DriverRoot string
	// DriverFile is the full path of the driver module.
	DriverFile string
	// DriverName is the name of the driver, e.g. "lighthouse".
	DriverName string
	// RuntimeDir is the VR runtime directory the driver belongs to.
	RuntimeDir string
	// SteamRoot is the Steam installation the runtime belongs to, if known.
	SteamRoot string
	// ConfigHints are config directories listed in the path registry.
	ConfigHints []string
}

// Locator finds an installed driver module.
type Locator struct {
	driverName   string
	steamRoots   []string
	pathRegistry string
	platform     platform
}

// Option defines a functional option for configuring a Locator.
type Option func(*Locator)

// WithDriverName sets the name of the driver to locate.
func WithDriverName(name string) Option {
	return func(l *Locator) {
		l.driverName = name
	}
}

// WithSteamRoots sets the Steam installation directories that are searched in
// addition to the conventional ones. These take precedence over the defaults.
func WithSteamRoots(roots ...string) Option {
	return func(l *Locator) {
		l.steamRoots = append(l.steamRoots, roots...)
	}
}

// WithPathRegistry sets the location of the OpenVR path registry file.
// An empty path disables the registry lookup.
func WithPathRegistry(path string) Option {
	return func(l *Locator) {
		l.pathRegistry = path
	}
}

// withPlatform overrides the platform; used in tests.
func withPlatform(goos, goarch string) Option {
	return func(l *Locator) {
		l.platform = platform{goos: goos, goarch: goarch}
	}
}

// New creates a Locator. By default, the lighthouse driver is searched for
// using the OpenVR path registry and the conventional Steam directories.
func New(opts ...Option) *Locator {
	l := &Locator{
		driverName: spec.DefaultDriverName,
		platform:   platform{goos: runtime.GOOS, goarch: runtime.GOARCH},
	}
	l.pathRegistry = l.platform.defaultPathRegistry()
	for _, opt := range opts {
		opt(l)
	}
	if l.driverName == "" {
		l.driverName = spec.DefaultDriverName
	}
	l.steamRoots = append(l.steamRoots, l.platform.defaultSteamRoots()...)
	return l
}

// Locate searches for the driver module. Absence is reported through
// DriverLocation.Found and is never an error.
func (l *Locator) Locate() DriverLocation {
	var configHints []string
	var runtimes []steamRoot

	if l.pathRegistry != "" {
		registry, err := readPathRegistry(l.pathRegistry)
		if err != nil {
			klog.V(4).Infof("Skipping path registry: %v", err)
		} else {
			configHints = registry.Config
			for _, r := range registry.Runtime {
				runtimes = append(runtimes, steamRoot(r))
			}
		}
	}

	for _, r := range l.steamRoots {
		for _, subdir := range runtimeSubdirs {
			runtimes = append(runtimes, steamRoot(r).join(subdir))
		}
	}

	visited := make(map[steamRoot]bool)
	for _, runtimeDir := range runtimes {
		if runtimeDir == "" || visited[runtimeDir] {
			continue
		}
		visited[runtimeDir] = true

		driverFile := l.platform.driverFile(string(runtimeDir), l.driverName)
		klog.V(4).Infof("Looking for %v driver at %v", l.driverName, driverFile)
		if !isFile(driverFile) {
			continue
		}

		return DriverLocation{
			Found:       true,
			DriverRoot:  filepath.Dir(driverFile),
			DriverFile:  driverFile,
			DriverName:  l.driverName,
			RuntimeDir:  string(runtimeDir),
			SteamRoot:   string(runtimeDir.steamRoot()),
			ConfigHints: configHints,
		}
	}

	return DriverLocation{
		DriverName:  l.driverName,
		ConfigHints: configHints,
	}
}

// steamRoot is a directory that may be, or may be inside of, a Steam
// installation.
type steamRoot string

func (r steamRoot) join(parts ...string) steamRoot {
	return steamRoot(filepath.Join(append([]string{string(r)}, parts...)...))
}

// steamRoot returns the Steam installation that contains the runtime
// directory r, or an empty root if r is not inside a steamapps folder.
func (r steamRoot) steamRoot() steamRoot {
	common := filepath.Dir(filepath.Clean(string(r)))
	steamapps := filepath.Dir(common)
	if filepath.Base(common) != "common" {
		return ""
	}
	switch filepath.Base(steamapps) {
	case "steamapps", "SteamApps":
		return steamRoot(filepath.Dir(steamapps))
	}
	return ""
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
