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

package host

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/NVIDIA/vr-driver-loader/internal/logger"
)

// deviceNamespace seeds the stable per-serial device keys.
var deviceNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/NVIDIA/vr-driver-loader/devices"))

// Interface is the callback surface handed to the native driver. The driver
// invokes these methods while it is active, possibly from its own threads.
type Interface interface {
	// TrackedDeviceAdded is called when the driver discovers a device.
	TrackedDeviceAdded(serial string) bool
	// TrackedDevicePoseUpdated is called whenever a device reports a new pose.
	TrackedDevicePoseUpdated(index uint32)
	// TrackedDevicePropertiesChanged is called when device properties change.
	TrackedDevicePropertiesChanged(index uint32)
	// VsyncEvent is called on every display vsync.
	VsyncEvent(offsetSeconds float64)
	// IsExiting reports whether the host is shutting down.
	IsExiting() bool
	// SetExiting marks the host as shutting down.
	SetExiting()
	// Log receives log lines emitted by the driver.
	Log(msg string)
}

// TrackedDeviceAddedFunc handles a device discovered by the driver.
type TrackedDeviceAddedFunc func(serial string) bool

// ServerDriverHost is the default implementation of Interface.
type ServerDriverHost struct {
	logger  logger.Interface
	exiting atomic.Bool

	mu                   sync.Mutex
	onTrackedDeviceAdded TrackedDeviceAddedFunc
	added                []string
	poseUpdates          map[uint32]uint64
	propertyChanges      map[uint32]uint64
	vsyncs               uint64
}

var _ Interface = (*ServerDriverHost)(nil)

// Option defines a functional option for configuring a ServerDriverHost.
type Option func(*ServerDriverHost)

// WithLogger sets the logger that receives the driver's log lines.
func WithLogger(logger logger.Interface) Option {
	return func(h *ServerDriverHost) {
		h.logger = logger
	}
}

// WithTrackedDeviceAddedFunc sets the handler for newly discovered devices.
func WithTrackedDeviceAddedFunc(f TrackedDeviceAddedFunc) Option {
	return func(h *ServerDriverHost) {
		h.onTrackedDeviceAdded = f
	}
}

// New creates a ServerDriverHost.
func New(opts ...Option) *ServerDriverHost {
	h := &ServerDriverHost{
		poseUpdates:     make(map[uint32]uint64),
		propertyChanges: make(map[uint32]uint64),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = logger.ToKlog
	}
	return h
}

// SetTrackedDeviceAddedFunc replaces the handler for newly discovered devices.
func (h *ServerDriverHost) SetTrackedDeviceAddedFunc(f TrackedDeviceAddedFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onTrackedDeviceAdded = f
}

// TrackedDeviceAdded records the serial and forwards it to the configured
// handler. Devices are refused once the host is exiting or if no handler is
// set.
func (h *ServerDriverHost) TrackedDeviceAdded(serial string) bool {
	if h.IsExiting() {
		klog.Warningf("Ignoring device %q added while exiting", serial)
		return false
	}

	h.mu.Lock()
	f := h.onTrackedDeviceAdded
	h.added = append(h.added, serial)
	h.mu.Unlock()

	klog.InfoS("Driver reported tracked device", "serial", serial, "key", DeviceKey(serial))
	if f == nil {
		return false
	}
	return f(serial)
}

// TrackedDevicePoseUpdated counts pose updates for the device at index.
func (h *ServerDriverHost) TrackedDevicePoseUpdated(index uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.poseUpdates[index]++
}

// TrackedDevicePropertiesChanged counts property changes for the device at index.
func (h *ServerDriverHost) TrackedDevicePropertiesChanged(index uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.propertyChanges[index]++
}

// VsyncEvent counts vsync events.
func (h *ServerDriverHost) VsyncEvent(float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.vsyncs++
}

// IsExiting reports whether SetExiting has been called.
func (h *ServerDriverHost) IsExiting() bool {
	return h.exiting.Load()
}

// SetExiting marks the host as exiting.
func (h *ServerDriverHost) SetExiting() {
	h.exiting.Store(true)
}

// Log forwards a driver log line to the configured logger.
func (h *ServerDriverHost) Log(msg string) {
	h.logger.Info("driver: ", logger.DriverLine(msg))
}

// AddedSerials returns the serials reported through TrackedDeviceAdded, in order.
func (h *ServerDriverHost) AddedSerials() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.added...)
}

// PoseUpdates returns the number of pose updates seen for the device at index.
func (h *ServerDriverHost) PoseUpdates(index uint32) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.poseUpdates[index]
}

// PropertyChanges returns the number of property changes seen for the device at index.
func (h *ServerDriverHost) PropertyChanges(index uint32) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.propertyChanges[index]
}

// DeviceKey returns a stable identifier for the device with the given serial.
func DeviceKey(serial string) string {
	return uuid.NewSHA1(deviceNamespace, []byte(serial)).String()
}
