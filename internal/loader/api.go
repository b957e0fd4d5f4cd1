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

package loader

import (
	"github.com/NVIDIA/vr-driver-loader/internal/devices"
	"github.com/NVIDIA/vr-driver-loader/internal/host"
)

// Module is an opened native driver module.
//
//go:generate moq -stub -out module_mock.go . Module
type Module interface {
	// IsHMDPresent asks the driver's client-side provider whether a headset
	// is attached, using the runtime-wide config directory.
	IsHMDPresent(rootConfigDir string) bool
	// ServerProvider calls the module's factory entry point to obtain the
	// server-side device provider.
	ServerProvider() (ServerProvider, error)
	// Close unmaps the module.
	Close() error
}

// Opener maps the driver module at file into the process. root is the
// directory the driver was installed to.
//
// An Opener may return a non-nil Module together with an error if the module
// was mapped but is not usable, e.g. because its entry point is missing. The
// module is then still closed by the Loader.
type Opener func(root, file string) (Module, error)

// ServerProvider is the driver-supplied object responsible for producing and
// updating tracked devices.
//
//go:generate moq -stub -out server_provider_mock.go . ServerProvider
type ServerProvider interface {
	// Init hands the host callback interface to the driver.
	Init(driverHost host.Interface, userDriverConfigDir, driverInstallDir string) error
	// Cleanup is called before the module is unloaded.
	Cleanup()
	TrackedDeviceCount() uint32
	TrackedDevice(index uint32) devices.Device
	FindTrackedDevice(serial string) devices.Device
	// RunFrame gives the driver a chance to do per-frame work.
	RunFrame()
	ShouldBlockStandbyMode() bool
	EnterStandby()
	LeaveStandby()
}
