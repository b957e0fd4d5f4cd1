//go:build linux && cgo

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

package native

/*
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdlib.h>

#include "shim.h"
*/
import "C"

import (
	"fmt"
	"runtime/cgo"
	"unsafe"

	"github.com/NVIDIA/go-nvml/pkg/dl"
	"k8s.io/klog/v2"

	"github.com/NVIDIA/vr-driver-loader/internal/devices"
	"github.com/NVIDIA/vr-driver-loader/internal/host"
	"github.com/NVIDIA/vr-driver-loader/internal/loader"
)

// module is a driver shared library mapped into the process.
type module struct {
	file    string
	lib     *dl.DynamicLibrary
	handle  unsafe.Pointer
	factory unsafe.Pointer
}

var _ loader.Opener = Open

// Open maps the driver module at file and resolves its factory entry point.
// If the library was mapped but the entry point is missing, the module is
// returned together with the error so that it can be unmapped.
func Open(root, file string) (loader.Module, error) {
	lib := dl.New(file, dl.RTLD_LAZY|dl.RTLD_GLOBAL)
	if err := lib.Open(); err != nil {
		return nil, fmt.Errorf("error opening %v: %w", file, err)
	}
	m := &module{
		file: file,
		lib:  lib,
	}

	if err := lib.Lookup(FactorySymbol); err != nil {
		return m, fmt.Errorf("entry point %v not found: %w", FactorySymbol, err)
	}

	cfile := C.CString(file)
	defer C.free(unsafe.Pointer(cfile))
	m.handle = C.dlopen(cfile, C.RTLD_LAZY|C.RTLD_NOLOAD)
	if m.handle == nil {
		return m, fmt.Errorf("unable to reference %v: %v", file, C.GoString(C.dlerror()))
	}

	csym := C.CString(FactorySymbol)
	defer C.free(unsafe.Pointer(csym))
	m.factory = C.dlsym(m.handle, csym)
	if m.factory == nil {
		return m, fmt.Errorf("entry point %v not found: %v", FactorySymbol, C.GoString(C.dlerror()))
	}

	klog.V(4).Infof("Resolved %v in %v (driver root %v)", FactorySymbol, file, root)
	return m, nil
}

func (m *module) getInterface(name string) (unsafe.Pointer, error) {
	if m.factory == nil {
		return nil, fmt.Errorf("%w: %v", ErrNoInterface, name)
	}
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	var code C.int
	iface := C.vr_call_factory(m.factory, cname, &code)
	if iface == nil {
		return nil, fmt.Errorf("%w: %v (error %d)", ErrNoInterface, name, int(code))
	}
	return iface, nil
}

// IsHMDPresent asks the client device provider whether a headset is attached.
func (m *module) IsHMDPresent(rootConfigDir string) bool {
	client, err := m.getInterface(ClientProviderVersion)
	if err != nil {
		klog.Warningf("Unable to query headset presence: %v", err)
		return false
	}
	croot := C.CString(rootConfigDir)
	defer C.free(unsafe.Pointer(croot))
	return bool(C.vr_client_is_hmd_present(client, croot))
}

// ServerProvider obtains the server device provider from the factory.
func (m *module) ServerProvider() (loader.ServerProvider, error) {
	server, err := m.getInterface(ServerProviderVersion)
	if err != nil {
		return nil, err
	}
	return &serverProvider{ptr: server}, nil
}

// Close drops both references held on the library.
func (m *module) Close() error {
	if m.handle != nil {
		C.dlclose(m.handle)
		m.handle = nil
		m.factory = nil
	}
	if m.lib == nil {
		return nil
	}
	lib := m.lib
	m.lib = nil
	if err := lib.Close(); err != nil {
		return fmt.Errorf("error closing %v: %w", m.file, err)
	}
	return nil
}

// serverProvider wraps an IServerTrackedDeviceProvider instance.
type serverProvider struct {
	ptr     unsafe.Pointer
	handle  cgo.Handle
	hostObj *C.vr_host_object
	logObj  *C.vr_host_object
}

func (p *serverProvider) Init(driverHost host.Interface, userDriverConfigDir, driverInstallDir string) error {
	p.handle = cgo.NewHandle(driverHost)
	p.hostObj = C.vr_new_host(C.uintptr_t(p.handle))
	p.logObj = C.vr_new_log(C.uintptr_t(p.handle))
	if p.hostObj == nil || p.logObj == nil {
		p.release()
		return fmt.Errorf("unable to allocate host objects")
	}

	cconfig := C.CString(userDriverConfigDir)
	defer C.free(unsafe.Pointer(cconfig))
	cinstall := C.CString(driverInstallDir)
	defer C.free(unsafe.Pointer(cinstall))

	if code := C.vr_server_init(p.ptr, p.logObj, p.hostObj, cconfig, cinstall); code != 0 {
		p.release()
		return fmt.Errorf("VRInitError %d", int(code))
	}
	return nil
}

func (p *serverProvider) Cleanup() {
	C.vr_server_cleanup(p.ptr)
	p.release()
}

func (p *serverProvider) release() {
	if p.hostObj != nil {
		C.vr_free_object(p.hostObj)
		p.hostObj = nil
	}
	if p.logObj != nil {
		C.vr_free_object(p.logObj)
		p.logObj = nil
	}
	if p.handle != 0 {
		p.handle.Delete()
		p.handle = 0
	}
}

func (p *serverProvider) TrackedDeviceCount() uint32 {
	return uint32(C.vr_server_device_count(p.ptr))
}

func (p *serverProvider) TrackedDevice(index uint32) devices.Device {
	return newDevice(C.vr_server_device(p.ptr, C.uint32_t(index)))
}

func (p *serverProvider) FindTrackedDevice(serial string) devices.Device {
	cserial := C.CString(serial)
	defer C.free(unsafe.Pointer(cserial))
	return newDevice(C.vr_server_find_device(p.ptr, cserial))
}

func (p *serverProvider) RunFrame() {
	C.vr_server_run_frame(p.ptr)
}

func (p *serverProvider) ShouldBlockStandbyMode() bool {
	return bool(C.vr_server_should_block_standby(p.ptr))
}

func (p *serverProvider) EnterStandby() {
	C.vr_server_enter_standby(p.ptr)
}

func (p *serverProvider) LeaveStandby() {
	C.vr_server_leave_standby(p.ptr)
}

// device wraps an ITrackedDeviceServerDriver instance. Two values are equal
// exactly when they refer to the same driver object.
type device struct {
	ptr unsafe.Pointer
}

func newDevice(ptr unsafe.Pointer) devices.Device {
	if ptr == nil {
		return nil
	}
	return device{ptr: ptr}
}

func (d device) Activate(index uint32) error {
	if code := C.vr_device_activate(d.ptr, C.uint32_t(index)); code != 0 {
		return fmt.Errorf("%w: VRInitError %d", ErrActivate, int(code))
	}
	return nil
}

func (d device) Deactivate() {
	C.vr_device_deactivate(d.ptr)
}
