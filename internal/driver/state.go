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

	"github.com/NVIDIA/vr-driver-loader/internal/host"
	"github.com/NVIDIA/vr-driver-loader/internal/loader"
)

// ErrClosed is recorded as the module state of a closed session.
var ErrClosed = errors.New("driver session closed")

// moduleState is what the session holds of the driver module. Exactly one
// variant is held at a time, and acquiring a provider is the only transition
// out of opened.
type moduleState interface {
	isModuleState()
}

// unopened is the state before a load was attempted, and of a session whose
// state was moved elsewhere.
type unopened struct{}

// opened holds a successfully mapped module that has not been consumed yet.
type opened struct {
	loader *loader.Loader
}

// consumed holds the provider that the module was handed over to.
type consumed struct {
	provider *loader.Provider
}

// failed records why the driver is not usable in this session.
type failed struct {
	err error
}

func (unopened) isModuleState() {}
func (opened) isModuleState()   {}
func (consumed) isModuleState() {}
func (failed) isModuleState()   {}

// driverHost is the host callback object of a session. A session either owns
// a host it created itself or borrows one supplied by the caller, who must
// keep it alive for the whole lifetime of the session.
type driverHost interface {
	get() host.Interface
}

type ownedHost struct {
	*host.ServerDriverHost
}

type borrowedHost struct {
	host.Interface
}

func (h ownedHost) get() host.Interface {
	return h.ServerDriverHost
}

func (h borrowedHost) get() host.Interface {
	return h.Interface
}
