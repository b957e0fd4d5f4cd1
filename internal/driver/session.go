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
	"fmt"
	"sync"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/NVIDIA/vr-driver-loader/internal/devices"
	"github.com/NVIDIA/vr-driver-loader/internal/host"
	"github.com/NVIDIA/vr-driver-loader/internal/loader"
	"github.com/NVIDIA/vr-driver-loader/internal/loader/native"
	"github.com/NVIDIA/vr-driver-loader/internal/locate"
)

var (
	// ErrHMDQueryAfterStart is the panic value raised when IsHMDPresent is
	// called after the module was handed over to the server device provider.
	ErrHMDQueryAfterStart = errors.New("calls to IsHMDPresent must occur before StartServerDeviceProvider")
	// ErrNoProvider is the panic value raised when the server device provider
	// is accessed before it was successfully started.
	ErrNoProvider = errors.New("server device provider was not started or failed to initialize")
)

// Session drives a single driver module through its lifecycle: locating and
// loading it, querying for a headset, starting the server device provider and
// tracking the devices it produces.
//
// Locating, loading and resolving the config directories happen once, in New.
// Failures are recorded rather than returned; a session that failed is inert
// but safe to query and close.
//
// A Session is meant to be driven from a single goroutine. The device registry
// and the provider reference may additionally be reached from driver
// callbacks.
type Session struct {
	id       string
	location locate.DriverLocation
	config   locate.ConfigDirs
	module   moduleState
	host     driverHost
	devices  *devices.Holder

	mu       sync.Mutex
	provider loader.ServerProvider
}

// New creates a session. It locates the driver, loads it if found, and
// resolves the config directories if it loaded.
func New(opts ...Option) *Session {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.locator == nil {
		o.locator = locate.New(o.locate...)
	}
	if o.opener == nil {
		o.opener = native.Open
	}

	s := &Session{
		id:      uuid.New().String(),
		module:  unopened{},
		devices: devices.NewHolder(),
	}
	if o.host != nil {
		s.host = borrowedHost{o.host}
	} else {
		var hostOpts []host.Option
		if o.logger != nil {
			hostOpts = append(hostOpts, host.WithLogger(o.logger))
		}
		s.host = ownedHost{host.New(hostOpts...)}
		s.bindHost()
	}

	s.location = o.locator.Locate()
	if !s.FoundDriver() {
		klog.InfoS("Driver not found", "session", s.id, "driver", s.location.DriverName)
		return s
	}
	klog.InfoS("Found driver", "session", s.id, "file", s.location.DriverFile)

	l := loader.New(o.opener, s.location.DriverRoot, s.location.DriverFile)
	if !l.Succeeded() {
		err := l.Err()
		if closeErr := l.Close(); closeErr != nil {
			klog.Warningf("Error unloading driver module: %v", closeErr)
		}
		s.module = failed{err}
		return s
	}
	s.module = opened{l}

	s.config = locate.ResolveConfigDirs(s.location)
	if !s.config.Valid {
		klog.InfoS("Driver config directories not found", "session", s.id)
	}
	return s
}

// bindHost routes device additions reported through an owned host to s.
func (s *Session) bindHost() {
	if h, ok := s.host.(ownedHost); ok {
		h.SetTrackedDeviceAddedFunc(s.trackedDeviceAdded)
	}
}

// ID returns the identifier of the session used in log messages.
func (s *Session) ID() string {
	return s.id
}

// Valid returns whether the driver was loaded, its config directories were
// found and a host is available. Together these imply the driver was found.
func (s *Session) Valid() bool {
	return s.FoundConfigDirs() && s.HaveDriverLoaded() && s.HaveServerDriverHost()
}

// FoundDriver returns whether the driver module was located.
func (s *Session) FoundDriver() bool {
	return s.location.Found
}

// DriverLocation returns the result of locating the driver.
func (s *Session) DriverLocation() locate.DriverLocation {
	return s.location
}

// DriverFile returns the path of the driver module.
func (s *Session) DriverFile() string {
	return s.location.DriverFile
}

// FoundConfigDirs returns whether the config directories were resolved.
func (s *Session) FoundConfigDirs() bool {
	return s.config.Valid
}

// ConfigDirs returns the resolved config directories.
func (s *Session) ConfigDirs() locate.ConfigDirs {
	return s.config
}

// DriverConfigDir returns the config directory of the driver.
func (s *Session) DriverConfigDir() string {
	return s.config.DriverConfigDir
}

// HaveDriverLoaded returns whether the session holds either a usable module
// or the provider the module was handed over to.
func (s *Session) HaveDriverLoaded() bool {
	switch m := s.module.(type) {
	case opened:
		return m.loader.Succeeded()
	case consumed:
		return m.provider != nil
	}
	return false
}

// Err returns the reason the driver is not usable, if it failed to load or
// the provider failed to start.
func (s *Session) Err() error {
	if m, ok := s.module.(failed); ok {
		return m.err
	}
	return nil
}

// HaveServerDriverHost returns whether a host callback object is available.
func (s *Session) HaveServerDriverHost() bool {
	return s.host != nil && s.host.get() != nil
}

// DriverHost returns the host callback object handed to the driver.
func (s *Session) DriverHost() host.Interface {
	if s.host == nil {
		return nil
	}
	return s.host.get()
}

// IsHMDPresent asks the driver whether a headset is attached. It returns false
// if the driver is not usable.
//
// It must be called before StartServerDeviceProvider; it panics with
// ErrHMDQueryAfterStart once the provider was started.
func (s *Session) IsHMDPresent() bool {
	if !(s.FoundDriver() && s.FoundConfigDirs() && s.HaveDriverLoaded()) {
		return false
	}
	m, ok := s.module.(opened)
	if !ok {
		panic(ErrHMDQueryAfterStart)
	}
	return m.loader.IsHMDPresent(s.config.RootConfigDir)
}

// StartServerDeviceProvider acquires and initializes the server device
// provider. The module is handed over to the provider on the first attempt
// whatever its outcome, so a failure is permanent for this session. Once it
// has succeeded, further calls return true without acquiring again.
func (s *Session) StartServerDeviceProvider() bool {
	if !(s.FoundDriver() && s.FoundConfigDirs() && s.HaveDriverLoaded() && s.HaveServerDriverHost()) {
		return false
	}
	m, ok := s.module.(opened)
	if !ok {
		_, started := s.module.(consumed)
		return started
	}

	p, err := loader.Acquire(m.loader, s.DriverHost(), s.config.DriverConfigDir,
		loader.WithBeforeInit(s.setProvider))
	if err != nil {
		klog.ErrorS(err, "Unable to start server device provider", "session", s.id)
		s.setProvider(nil)
		s.module = failed{err}
		return false
	}
	s.setProvider(p)
	s.module = consumed{p}
	klog.InfoS("Started server device provider", "session", s.id, "devices", p.TrackedDeviceCount())
	return true
}

// ServerDeviceProvider returns the started provider. It panics with
// ErrNoProvider if StartServerDeviceProvider has not succeeded.
func (s *Session) ServerDeviceProvider() loader.ServerProvider {
	m, ok := s.module.(consumed)
	if !ok || m.provider == nil {
		panic(ErrNoProvider)
	}
	return m.provider
}

// RunFrame lets the provider do its per-frame work. It is a no-op until the
// provider was started.
func (s *Session) RunFrame() {
	if p := s.started(); p != nil {
		p.RunFrame()
	}
}

// EnterStandby forwards a standby request to the provider.
func (s *Session) EnterStandby() {
	if p := s.started(); p != nil {
		p.EnterStandby()
	}
}

// LeaveStandby forwards the end of standby to the provider.
func (s *Session) LeaveStandby() {
	if p := s.started(); p != nil {
		p.LeaveStandby()
	}
}

func (s *Session) started() *loader.Provider {
	if m, ok := s.module.(consumed); ok {
		return m.provider
	}
	return nil
}

func (s *Session) setProvider(p loader.ServerProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provider = p
}

func (s *Session) activeProvider() loader.ServerProvider {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provider
}

// trackedDeviceAdded handles a device reported through the owned host by
// looking it up in the provider and registering it.
func (s *Session) trackedDeviceAdded(serial string) bool {
	p := s.activeProvider()
	if p == nil {
		klog.Warningf("Driver reported device %q without an active provider", serial)
		return false
	}
	dev := p.FindTrackedDevice(serial)
	if dev == nil {
		klog.Warningf("Driver reported device %q but does not provide it", serial)
		return false
	}
	added, index := s.AddAndActivateDevice(dev)
	if !added {
		klog.V(4).Infof("Device %q was already registered", serial)
		return false
	}
	klog.InfoS("Activated tracked device", "session", s.id, "serial", serial, "index", index)
	return true
}

// Devices returns the registry of activated devices.
func (s *Session) Devices() *devices.Holder {
	return s.devices
}

// AddAndActivateDevice registers dev at the next index and activates it.
// Registering a device that is already present is rejected.
func (s *Session) AddAndActivateDevice(dev devices.Device) (bool, uint32) {
	return s.devices.AddAndActivateDevice(dev)
}

// AddAndActivateDeviceAt registers dev at index and activates it.
func (s *Session) AddAndActivateDeviceAt(dev devices.Device, index uint32) (bool, uint32) {
	return s.devices.AddAndActivateDeviceAt(dev, index)
}

// DisableDeactivateOnShutdown keeps Stop from deactivating the registered
// devices, for hosts that power them off by other means.
func (s *Session) DisableDeactivateOnShutdown() {
	s.devices.DisableDeactivateOnShutdown()
}

// Stop tells the host the session is exiting and, unless disabled,
// deactivates every registered device. No device is registered after Stop,
// including one the driver reports concurrently. Calling it again only
// repeats the exit notification.
func (s *Session) Stop() {
	if s.HaveServerDriverHost() {
		s.DriverHost().SetExiting()
	}
	if n := s.devices.Shutdown(); n > 0 {
		klog.InfoS("Deactivated devices", "session", s.id, "count", n)
	}
}

// Close stops the session and releases the driver. Devices are deactivated
// before the provider is cleaned up and the module unmapped. Close is
// idempotent.
func (s *Session) Close() error {
	s.Stop()

	var err error
	switch m := s.module.(type) {
	case opened:
		err = m.loader.Close()
	case consumed:
		s.setProvider(nil)
		err = m.provider.Close()
	case failed:
		if errors.Is(m.err, ErrClosed) {
			return nil
		}
	}
	s.module = failed{ErrClosed}
	if err != nil {
		return fmt.Errorf("error releasing driver module: %w", err)
	}
	klog.InfoS("Closed driver session", "session", s.id)
	return nil
}

// Move transfers the whole state of s to a new session. s is left inert: it
// holds no module, provider or devices, and closing it has no effect on the
// devices now owned by the returned session.
func (s *Session) Move() *Session {
	dst := &Session{
		id:       s.id,
		location: s.location,
		config:   s.config,
		module:   s.module,
		host:     s.host,
		devices:  s.devices.Move(),
		provider: s.activeProvider(),
	}
	dst.bindHost()

	s.module = unopened{}
	s.host = nil
	s.setProvider(nil)
	return dst
}
