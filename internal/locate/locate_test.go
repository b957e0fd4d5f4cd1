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
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	spec "github.com/NVIDIA/vr-driver-loader/api/config/v1"
)

// makeSteam creates a fake Steam installation with the lighthouse driver and
// returns its root.
func makeSteam(t *testing.T, base string, withConfig bool) string {
	t.Helper()
	steam := filepath.Join(base, "Steam")
	bin := filepath.Join(steam, "steamapps", "common", "SteamVR", "drivers", "lighthouse", "bin", "linux64")
	require.NoError(t, os.MkdirAll(bin, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(bin, "driver_lighthouse.so"), []byte("ELF"), 0644))
	if withConfig {
		require.NoError(t, os.MkdirAll(filepath.Join(steam, "config", "lighthouse"), 0755))
	}
	return steam
}

func newTestLocator(t *testing.T, opts ...Option) *Locator {
	t.Helper()
	// Keep the conventional roots inside the test sandbox.
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	return New(append([]Option{withPlatform("linux", "amd64")}, opts...)...)
}

func TestLocate(t *testing.T) {
	base := t.TempDir()
	steam := makeSteam(t, base, true)

	testCases := []struct {
		description string
		opts        []Option
		expected    DriverLocation
	}{
		{
			description: "not installed",
			opts:        []Option{WithSteamRoots(filepath.Join(base, "missing"))},
			expected: DriverLocation{
				DriverName: "lighthouse",
			},
		},
		{
			description: "found in steam root",
			opts:        []Option{WithSteamRoots(steam)},
			expected: DriverLocation{
				Found:      true,
				DriverRoot: filepath.Join(steam, "steamapps/common/SteamVR/drivers/lighthouse/bin/linux64"),
				DriverFile: filepath.Join(steam, "steamapps/common/SteamVR/drivers/lighthouse/bin/linux64/driver_lighthouse.so"),
				DriverName: "lighthouse",
				RuntimeDir: filepath.Join(steam, "steamapps/common/SteamVR"),
				SteamRoot:  steam,
			},
		},
		{
			description: "other driver name is not found",
			opts:        []Option{WithSteamRoots(steam), WithDriverName("oculus")},
			expected: DriverLocation{
				DriverName: "oculus",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			l := newTestLocator(t, append([]Option{WithPathRegistry("")}, tc.opts...)...)
			require.Equal(t, tc.expected, l.Locate())
		})
	}
}

func TestLocateDefaultDriverName(t *testing.T) {
	l := newTestLocator(t, WithPathRegistry(""), WithDriverName(""))
	require.Equal(t, spec.DefaultDriverName, l.Locate().DriverName)
}

func TestLocateFromHome(t *testing.T) {
	l := newTestLocator(t, WithPathRegistry(""))
	home := os.Getenv("HOME")
	steam := makeSteam(t, filepath.Join(home, ".local", "share"), false)

	loc := l.Locate()
	require.True(t, loc.Found)
	require.Equal(t, steam, loc.SteamRoot)
}

func TestLocateFromPathRegistry(t *testing.T) {
	base := t.TempDir()
	steam := makeSteam(t, base, true)
	runtimeDir := filepath.Join(steam, "steamapps", "common", "SteamVR")
	configDir := filepath.Join(base, "vrconfig")

	registry := filepath.Join(base, pathRegistryFile)
	contents := fmt.Sprintf(`{
	"config": [%q],
	"external_drivers": null,
	"jsonid": "vrpathreg",
	"log": ["/tmp/logs"],
	"runtime": [%q],
	"version": 1
}`, configDir, runtimeDir)
	require.NoError(t, os.WriteFile(registry, []byte(contents), 0644))

	l := newTestLocator(t, WithPathRegistry(registry))
	loc := l.Locate()

	require.True(t, loc.Found)
	require.Equal(t, runtimeDir, loc.RuntimeDir)
	require.Equal(t, steam, loc.SteamRoot)
	require.Equal(t, []string{configDir}, loc.ConfigHints)
}

func TestLocateIgnoresBrokenRegistry(t *testing.T) {
	base := t.TempDir()
	steam := makeSteam(t, base, false)
	registry := filepath.Join(base, pathRegistryFile)
	require.NoError(t, os.WriteFile(registry, []byte("{not json"), 0644))

	l := newTestLocator(t, WithPathRegistry(registry), WithSteamRoots(steam))
	loc := l.Locate()
	require.True(t, loc.Found)
	require.Empty(t, loc.ConfigHints)
}

func TestResolveConfigDirs(t *testing.T) {
	base := t.TempDir()
	withConfig := makeSteam(t, filepath.Join(base, "a"), true)
	withoutConfig := makeSteam(t, filepath.Join(base, "b"), false)

	hint := filepath.Join(base, "hint")
	require.NoError(t, os.MkdirAll(filepath.Join(hint, "lighthouse"), 0755))

	testCases := []struct {
		description string
		location    DriverLocation
		expected    ConfigDirs
	}{
		{
			description: "not found is invalid",
			location:    DriverLocation{SteamRoot: withConfig, DriverName: "lighthouse"},
			expected:    ConfigDirs{},
		},
		{
			description: "steam config dir",
			location:    DriverLocation{Found: true, SteamRoot: withConfig, DriverName: "lighthouse"},
			expected: ConfigDirs{
				Valid:           true,
				RootConfigDir:   filepath.Join(withConfig, "config"),
				DriverConfigDir: filepath.Join(withConfig, "config", "lighthouse"),
			},
		},
		{
			description: "missing config dir is invalid",
			location:    DriverLocation{Found: true, SteamRoot: withoutConfig, DriverName: "lighthouse"},
			expected:    ConfigDirs{},
		},
		{
			description: "registry hint takes precedence",
			location: DriverLocation{
				Found:       true,
				SteamRoot:   withConfig,
				DriverName:  "lighthouse",
				ConfigHints: []string{hint},
			},
			expected: ConfigDirs{
				Valid:           true,
				RootConfigDir:   hint,
				DriverConfigDir: filepath.Join(hint, "lighthouse"),
			},
		},
		{
			description: "unusable hint falls back to steam",
			location: DriverLocation{
				Found:       true,
				SteamRoot:   withConfig,
				DriverName:  "lighthouse",
				ConfigHints: []string{filepath.Join(base, "nope")},
			},
			expected: ConfigDirs{
				Valid:           true,
				RootConfigDir:   filepath.Join(withConfig, "config"),
				DriverConfigDir: filepath.Join(withConfig, "config", "lighthouse"),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			require.Equal(t, tc.expected, ResolveConfigDirs(tc.location))
			require.Equal(t, ResolveConfigDirs(tc.location), ResolveConfigDirs(tc.location))
		})
	}
}

func TestPlatform(t *testing.T) {
	testCases := []struct {
		goos     string
		goarch   string
		expected string
	}{
		{"linux", "amd64", "drivers/lighthouse/bin/linux64/driver_lighthouse.so"},
		{"linux", "386", "drivers/lighthouse/bin/linux32/driver_lighthouse.so"},
		{"windows", "amd64", "drivers/lighthouse/bin/win64/driver_lighthouse.dll"},
		{"windows", "386", "drivers/lighthouse/bin/win32/driver_lighthouse.dll"},
		{"darwin", "amd64", "drivers/lighthouse/bin/osx32/driver_lighthouse.dylib"},
	}

	for _, tc := range testCases {
		t.Run(tc.goos+"/"+tc.goarch, func(t *testing.T) {
			p := platform{goos: tc.goos, goarch: tc.goarch}
			require.Equal(t, filepath.FromSlash("/rt/"+tc.expected), p.driverFile("/rt", "lighthouse"))
		})
	}
}

func TestSteamRootOfRuntime(t *testing.T) {
	require.Equal(t, steamRoot("/s"), steamRoot("/s/steamapps/common/SteamVR").steamRoot())
	require.Equal(t, steamRoot("/s"), steamRoot("/s/SteamApps/common/SteamVR/").steamRoot())
	require.Equal(t, steamRoot(""), steamRoot("/opt/SteamVR").steamRoot())
}
