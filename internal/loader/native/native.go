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

// Package native maps driver shared libraries into the process and calls
// into their C++ interfaces through a small C shim.
package native

import "errors"

const (
	// FactorySymbol is the entry point every driver module exports.
	FactorySymbol = "HmdDriverFactory"

	// ServerProviderVersion names the server device provider interface.
	ServerProviderVersion = "IServerTrackedDeviceProvider_003"
	// ClientProviderVersion names the client device provider interface.
	ClientProviderVersion = "IClientTrackedDeviceProvider_004"
)

var (
	// ErrUnsupported is returned when native modules cannot be loaded on this
	// platform or build.
	ErrUnsupported = errors.New("native driver modules are not supported in this build")
	// ErrNoInterface is returned when the factory does not provide an interface.
	ErrNoInterface = errors.New("driver factory returned no interface")
	// ErrActivate is returned when a device refuses activation.
	ErrActivate = errors.New("device activation failed")
)
