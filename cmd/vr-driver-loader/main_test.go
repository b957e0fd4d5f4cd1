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
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	spec "github.com/NVIDIA/vr-driver-loader/api/config/v1"
)

func ptr[T any](x T) *T {
	return &x
}

func testConfig(steamRoot string, failOnInitError bool) *spec.Config {
	interval := spec.Duration(time.Millisecond)
	return &spec.Config{
		Version: spec.Version,
		Flags: spec.Flags{
			CommandLineFlags: spec.CommandLineFlags{
				SteamRoots:           ptr([]string{steamRoot}),
				DriverName:           ptr("lighthouse"),
				PathRegistry:         ptr(filepath.Join(steamRoot, "no-registry")),
				FailOnInitError:      ptr(failOnInitError),
				DeactivateOnShutdown: ptr(true),
				Provider: &spec.ProviderCommandLineFlags{
					Start:            ptr(true),
					RunFrameInterval: &interval,
					WatchDriver:      ptr(false),
				},
			},
		},
	}
}

func TestValidateFlags(t *testing.T) {
	testCases := []struct {
		description string
		driverName  string
		err         bool
	}{
		{description: "default", driverName: "lighthouse"},
		{description: "empty", driverName: "", err: true},
		{description: "path", driverName: "../lighthouse", err: true},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			config := testConfig(t.TempDir(), true)
			config.Flags.DriverName = ptr(tc.driverName)
			err := validateFlags(config)
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestStartSessionDriverNotFound(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")

	session, err := startSession(testConfig(t.TempDir(), true))
	require.Nil(t, session)

	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 1, exitErr.ExitCode())
}

func TestStartSessionUnusableDriver(t *testing.T) {
	if runtime.GOOS != "linux" || runtime.GOARCH != "amd64" {
		t.Skip("fixture uses the linux64 driver layout")
	}
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")

	steam := t.TempDir()
	bin := filepath.Join(steam, "steamapps", "common", "SteamVR", "drivers", "lighthouse", "bin", "linux64")
	require.NoError(t, os.MkdirAll(bin, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(bin, "driver_lighthouse.so"), []byte("not a shared object"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(steam, "config", "lighthouse"), 0755))

	t.Run("fail on init error", func(t *testing.T) {
		session, err := startSession(testConfig(steam, true))
		require.Error(t, err)
		require.Nil(t, session)
	})

	t.Run("wait for restart", func(t *testing.T) {
		session, err := startSession(testConfig(steam, false))
		require.NoError(t, err)
		require.NotNil(t, session)
		defer closeSession(session)

		require.True(t, session.FoundDriver())
		require.False(t, session.HaveDriverLoaded())
		require.False(t, session.Valid())
	})
}
