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

package driver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/vr-driver-loader/internal/devices"
	"github.com/NVIDIA/vr-driver-loader/internal/host"
	"github.com/NVIDIA/vr-driver-loader/internal/loader"
	"github.com/NVIDIA/vr-driver-loader/internal/locate"
)

type locatorFunc func() locate.DriverLocation

func (f locatorFunc) Locate() locate.DriverLocation {
	return f()
}

// installed returns the location of a fake driver whose config directories
// exist.
func installed(t *testing.T) locate.DriverLocation {
	t.Helper()
	steam := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(steam, "config", "lighthouse"), 0755))
	bin := filepath.Join(steam, "steamapps", "common", "SteamVR", "drivers", "lighthouse", "bin", "linux64")
	return locate.DriverLocation{
		Found:      true,
		DriverRoot: bin,
		DriverFile: filepath.Join(bin, "driver_lighthouse.so"),
		DriverName: "lighthouse",
		SteamRoot:  steam,
	}
}

// fakeDriver is a module whose server provider is a mock.
type fakeDriver struct {
	module   *loader.ModuleMock
	provider *loader.ServerProviderMock
	opens    int
}

func newFakeDriver() *fakeDriver {
	d := &fakeDriver{
		provider: &loader.ServerProviderMock{},
	}
	d.module = &loader.ModuleMock{
		ServerProviderFunc: func() (loader.ServerProvider, error) {
			return d.provider, nil
		},
	}
	return d
}

func (d *fakeDriver) open(root, file string) (loader.Module, error) {
	d.opens++
	return d.module, nil
}

func newSession(t *testing.T, d *fakeDriver, opts ...Option) *Session {
	t.Helper()
	loc := installed(t)
	opts = append([]Option{
		WithLocator(locatorFunc(func() locate.DriverLocation { return loc })),
		WithOpener(d.open),
	}, opts...)
	return New(opts...)
}

func TestSessionDriverNotFound(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")

	d := newFakeDriver()
	s := New(
		WithLocateOptions(
			locate.WithSteamRoots(filepath.Join(t.TempDir(), "missing")),
			locate.WithPathRegistry(""),
		),
		WithOpener(d.open),
	)

	require.False(t, s.FoundDriver())
	require.False(t, s.HaveDriverLoaded())
	require.False(t, s.FoundConfigDirs())
	require.False(t, s.Valid())
	require.True(t, s.HaveServerDriverHost())
	require.False(t, s.IsHMDPresent())
	require.False(t, s.StartServerDeviceProvider())
	require.Zero(t, d.opens)

	s.Stop()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}

func TestSessionLoadFailure(t *testing.T) {
	loc := installed(t)
	module := &loader.ModuleMock{}
	errNoEntry := errors.New("entry point HmdDriverFactory not found")

	s := New(
		WithLocator(locatorFunc(func() locate.DriverLocation { return loc })),
		WithOpener(func(root, file string) (loader.Module, error) {
			return module, errNoEntry
		}),
	)

	require.True(t, s.FoundDriver())
	require.False(t, s.HaveDriverLoaded())
	require.False(t, s.FoundConfigDirs())
	require.False(t, s.Valid())
	require.ErrorIs(t, s.Err(), errNoEntry)
	require.False(t, s.IsHMDPresent())
	require.False(t, s.StartServerDeviceProvider())
	require.Len(t, module.CloseCalls(), 1)
	require.Empty(t, module.ServerProviderCalls())

	require.NoError(t, s.Close())
	require.Len(t, module.CloseCalls(), 1)
}

func TestSessionValid(t *testing.T) {
	d := newFakeDriver()
	s := newSession(t, d)
	defer s.Close()

	require.True(t, s.FoundDriver())
	require.True(t, s.HaveDriverLoaded())
	require.True(t, s.FoundConfigDirs())
	require.True(t, s.Valid())
	require.Equal(t, filepath.Join(s.DriverLocation().SteamRoot, "config", "lighthouse"), s.DriverConfigDir())
	require.Equal(t, 1, d.opens)
	require.NotEmpty(t, s.ID())
}

func TestSessionIsHMDPresent(t *testing.T) {
	d := newFakeDriver()
	d.module.IsHMDPresentFunc = func(rootConfigDir string) bool {
		return true
	}
	s := newSession(t, d)
	defer s.Close()

	require.True(t, s.IsHMDPresent())
	require.Len(t, d.module.IsHMDPresentCalls(), 1)
	require.Equal(t, s.ConfigDirs().RootConfigDir, d.module.IsHMDPresentCalls()[0].RootConfigDir)
}

func TestSessionIsHMDPresentAfterStartPanics(t *testing.T) {
	d := newFakeDriver()
	s := newSession(t, d)
	defer s.Close()

	require.True(t, s.StartServerDeviceProvider())
	require.PanicsWithError(t, ErrHMDQueryAfterStart.Error(), func() {
		s.IsHMDPresent()
	})
	require.Empty(t, d.module.IsHMDPresentCalls())
}

func TestSessionStartServerDeviceProviderTwice(t *testing.T) {
	d := newFakeDriver()
	s := newSession(t, d)
	defer s.Close()

	require.True(t, s.StartServerDeviceProvider())
	require.True(t, s.StartServerDeviceProvider())

	require.Len(t, d.module.ServerProviderCalls(), 1)
	require.Len(t, d.provider.InitCalls(), 1)
	require.Equal(t, s.DriverConfigDir(), d.provider.InitCalls()[0].UserDriverConfigDir)
	require.Equal(t, s.DriverLocation().DriverRoot, d.provider.InitCalls()[0].DriverInstallDir)
	require.Same(t, d.provider, s.ServerDeviceProvider().(*loader.Provider).ServerProvider)
}

func TestSessionStartFailureIsPermanent(t *testing.T) {
	d := newFakeDriver()
	d.provider.InitFunc = func(host.Interface, string, string) error {
		return errors.New("VRInitError 108")
	}
	s := newSession(t, d)
	defer s.Close()

	require.False(t, s.StartServerDeviceProvider())
	require.False(t, s.StartServerDeviceProvider())
	require.Len(t, d.module.ServerProviderCalls(), 1)
	require.Len(t, d.module.CloseCalls(), 1)

	require.False(t, s.HaveDriverLoaded())
	require.False(t, s.Valid())
	require.ErrorIs(t, s.Err(), loader.ErrInitFailed)
	require.False(t, s.IsHMDPresent())
	require.PanicsWithError(t, ErrNoProvider.Error(), func() {
		s.ServerDeviceProvider()
	})
}

func TestSessionServerDeviceProviderBeforeStartPanics(t *testing.T) {
	s := newSession(t, newFakeDriver())
	defer s.Close()

	require.PanicsWithError(t, ErrNoProvider.Error(), func() {
		s.ServerDeviceProvider()
	})
}

func TestSessionRoutesReportedDevices(t *testing.T) {
	headset := &devices.DeviceMock{}
	d := newFakeDriver()
	d.provider.FindTrackedDeviceFunc = func(serial string) devices.Device {
		if serial == "LHR-00000001" {
			return headset
		}
		return nil
	}
	d.provider.InitFunc = func(driverHost host.Interface, _ string, _ string) error {
		require.True(t, driverHost.TrackedDeviceAdded("LHR-00000001"))
		require.False(t, driverHost.TrackedDeviceAdded("LHR-00000001"))
		require.False(t, driverHost.TrackedDeviceAdded("unknown"))
		return nil
	}
	s := newSession(t, d)
	defer s.Close()

	require.True(t, s.StartServerDeviceProvider())
	require.Len(t, headset.ActivateCalls(), 1)
	require.Equal(t, uint32(0), headset.ActivateCalls()[0].Index)

	found, index := s.Devices().FindDevice(headset)
	require.True(t, found)
	require.Equal(t, uint32(0), index)
}

func TestSessionRegistry(t *testing.T) {
	s := newSession(t, newFakeDriver())
	defer s.Close()

	a := &devices.DeviceMock{}
	b := &devices.DeviceMock{}

	added, index := s.AddAndActivateDevice(a)
	require.True(t, added)
	require.Equal(t, uint32(0), index)

	added, _ = s.AddAndActivateDevice(a)
	require.False(t, added)

	added, index = s.AddAndActivateDeviceAt(b, 4)
	require.True(t, added)
	require.Equal(t, uint32(4), index)
	require.Equal(t, 5, s.Devices().Len())
}

func TestSessionStop(t *testing.T) {
	testCases := []struct {
		description         string
		disable             bool
		expectedDeactivates int
	}{
		{
			description:         "deactivates devices once",
			expectedDeactivates: 1,
		},
		{
			description:         "disabled deactivation",
			disable:             true,
			expectedDeactivates: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			s := newSession(t, newFakeDriver())
			dev := &devices.DeviceMock{}
			added, _ := s.AddAndActivateDevice(dev)
			require.True(t, added)

			if tc.disable {
				s.DisableDeactivateOnShutdown()
			}

			s.Stop()
			s.Stop()
			require.True(t, s.DriverHost().IsExiting())
			require.Len(t, dev.DeactivateCalls(), tc.expectedDeactivates)

			require.NoError(t, s.Close())
			require.Len(t, dev.DeactivateCalls(), tc.expectedDeactivates)
		})
	}
}

func TestSessionStopRacesReportedDevice(t *testing.T) {
	var order []string
	headset := &devices.DeviceMock{
		ActivateFunc: func(uint32) error {
			order = append(order, "activate")
			return nil
		},
		DeactivateFunc: func() {
			order = append(order, "deactivate")
		},
	}
	d := newFakeDriver()
	d.module.CloseFunc = func() error {
		order = append(order, "unload")
		return nil
	}
	s := newSession(t, d)
	// Stop lands between the exiting check of the host and the registration.
	d.provider.FindTrackedDeviceFunc = func(serial string) devices.Device {
		s.Stop()
		return headset
	}

	require.True(t, s.StartServerDeviceProvider())
	require.False(t, s.DriverHost().TrackedDeviceAdded("LHR-00000001"))
	require.True(t, s.DriverHost().IsExiting())
	require.False(t, s.Devices().HasDeviceAt(0))

	require.NoError(t, s.Close())
	require.Empty(t, headset.ActivateCalls())
	require.Equal(t, []string{"unload"}, order)
}

func TestSessionCloseOrder(t *testing.T) {
	var order []string
	dev := &devices.DeviceMock{
		DeactivateFunc: func() {
			order = append(order, "deactivate")
		},
	}
	d := newFakeDriver()
	d.provider.CleanupFunc = func() {
		order = append(order, "cleanup")
	}
	d.module.CloseFunc = func() error {
		order = append(order, "unload")
		return nil
	}
	s := newSession(t, d)

	require.True(t, s.StartServerDeviceProvider())
	added, _ := s.AddAndActivateDevice(dev)
	require.True(t, added)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	require.Equal(t, []string{"deactivate", "cleanup", "unload"}, order)
	require.False(t, s.HaveDriverLoaded())
	require.ErrorIs(t, s.Err(), ErrClosed)
}

func TestSessionCloseBeforeStartUnloads(t *testing.T) {
	d := newFakeDriver()
	s := newSession(t, d)

	require.NoError(t, s.Close())
	require.Len(t, d.module.CloseCalls(), 1)
	require.Empty(t, d.module.ServerProviderCalls())
}

func TestSessionForwardsToProvider(t *testing.T) {
	d := newFakeDriver()
	s := newSession(t, d)
	defer s.Close()

	s.RunFrame()
	s.EnterStandby()
	require.Empty(t, d.provider.RunFrameCalls())
	require.Empty(t, d.provider.EnterStandbyCalls())

	require.True(t, s.StartServerDeviceProvider())
	s.RunFrame()
	s.RunFrame()
	s.EnterStandby()
	s.LeaveStandby()
	require.Len(t, d.provider.RunFrameCalls(), 2)
	require.Len(t, d.provider.EnterStandbyCalls(), 1)
	require.Len(t, d.provider.LeaveStandbyCalls(), 1)
}

func TestSessionMove(t *testing.T) {
	headset := &devices.DeviceMock{}
	controller := &devices.DeviceMock{}
	d := newFakeDriver()
	d.provider.FindTrackedDeviceFunc = func(serial string) devices.Device {
		return controller
	}
	src := newSession(t, d)
	require.True(t, src.StartServerDeviceProvider())
	added, _ := src.AddAndActivateDevice(headset)
	require.True(t, added)

	driverHost := src.DriverHost()
	dst := src.Move()

	require.Equal(t, src.ID(), dst.ID())
	require.True(t, dst.HaveDriverLoaded())
	require.True(t, dst.Valid())
	require.False(t, src.HaveDriverLoaded())
	require.False(t, src.HaveServerDriverHost())
	require.Zero(t, src.Devices().Len())

	// Devices reported after the move are registered with the destination.
	require.True(t, driverHost.TrackedDeviceAdded("LHR-00000002"))
	found, index := dst.Devices().FindDevice(controller)
	require.True(t, found)
	require.Equal(t, uint32(1), index)

	require.NoError(t, src.Close())
	require.Empty(t, headset.DeactivateCalls())
	require.Empty(t, d.provider.CleanupCalls())

	require.NoError(t, dst.Close())
	require.Len(t, headset.DeactivateCalls(), 1)
	require.Len(t, controller.DeactivateCalls(), 1)
	require.Len(t, d.provider.CleanupCalls(), 1)
}

func TestSessionBorrowedHost(t *testing.T) {
	var reported []string
	h := host.New(host.WithTrackedDeviceAddedFunc(func(serial string) bool {
		reported = append(reported, serial)
		return true
	}))
	d := newFakeDriver()
	s := newSession(t, d, WithHost(h))

	require.Same(t, h, s.DriverHost())
	require.True(t, s.StartServerDeviceProvider())
	require.Same(t, h, d.provider.InitCalls()[0].DriverHost)

	// The session leaves routing of a borrowed host to its owner.
	require.True(t, h.TrackedDeviceAdded("LHR-00000003"))
	require.Equal(t, []string{"LHR-00000003"}, reported)
	require.Zero(t, s.Devices().Len())

	require.NoError(t, s.Close())
	require.True(t, h.IsExiting())
}
