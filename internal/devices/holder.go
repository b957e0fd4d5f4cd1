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

package devices

import (
	"errors"
	"fmt"
	"sync"

	"k8s.io/klog/v2"
)

// ErrNoDevice is the panic value raised when an unoccupied slot is accessed.
var ErrNoDevice = errors.New("no device at index")

// MaxDeviceCount is the number of slots a holder can hold, matching the
// tracked device limit of the OpenVR runtime.
const MaxDeviceCount = 64

// Holder is a slot-indexed table of activated devices.
//
// The holder never owns the devices themselves; it owns the slot table and is
// responsible for calling Activate when a device is placed in a slot and
// Deactivate when it is removed. Unless DisableDeactivateOnShutdown has been
// called, Close deactivates every device still present.
//
// All methods are safe for concurrent use. The slot table is only mutated
// under the lock; Activate and Deactivate are invoked after the lock has been
// released so that a device may call back into the holder.
//
// Once Shutdown was called no further device is accepted.
//
// The zero value is an empty holder that deactivates on shutdown.
type Holder struct {
	mu      sync.Mutex
	devices []Device
	// keepOnShutdown is the inverse of the deactivate-on-shutdown flag so that
	// the zero value has deactivation enabled.
	keepOnShutdown bool
	shutdown       bool
	// activating tracks Activate calls made outside the lock.
	activating sync.WaitGroup
}

// NewHolder creates an empty device holder.
func NewHolder() *Holder {
	return &Holder{}
}

// AddAndActivateDevice appends dev at the next free index and activates it.
// A nil device, one that is already present at any index, or one that would
// exceed MaxDeviceCount is rejected, as is any device after Shutdown.
func (h *Holder) AddAndActivateDevice(dev Device) (bool, uint32) {
	if dev == nil {
		return false, 0
	}

	h.mu.Lock()
	if h.shutdown || len(h.devices) >= MaxDeviceCount {
		h.mu.Unlock()
		return false, 0
	}
	if _, found := h.find(dev); found {
		h.mu.Unlock()
		return false, 0
	}
	index := uint32(len(h.devices))
	h.devices = append(h.devices, dev)
	h.activating.Add(1)
	h.mu.Unlock()

	h.activate(dev, index)
	return true, index
}

// AddAndActivateDeviceAt places dev at the requested index and activates it.
//
// If dev is already present at index it is activated again. If it is present
// at a different index the call is rejected and that index is reported. The
// table grows as needed to accommodate index; an index occupied by another
// device is never overwritten. Indices at or above MaxDeviceCount are
// rejected.
func (h *Holder) AddAndActivateDeviceAt(dev Device, index uint32) (bool, uint32) {
	if dev == nil || index >= MaxDeviceCount {
		return false, 0
	}

	h.mu.Lock()
	if h.shutdown {
		h.mu.Unlock()
		return false, 0
	}
	if existing, found := h.find(dev); found {
		if existing != index {
			h.mu.Unlock()
			return false, existing
		}
		h.activating.Add(1)
		h.mu.Unlock()
		h.activate(dev, index)
		return true, index
	}

	h.reserve(index + 1)
	if h.devices[index] != nil {
		h.mu.Unlock()
		return false, 0
	}
	h.devices[index] = dev
	h.activating.Add(1)
	h.mu.Unlock()

	h.activate(dev, index)
	return true, index
}

// Reserve ensures that the first n indices exist in the table, filling new
// slots as empty. It returns true if the table had to grow. n is capped at
// MaxDeviceCount.
func (h *Holder) Reserve(n uint32) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reserve(n)
}

// HasDeviceAt returns whether a device occupies the slot at index.
func (h *Holder) HasDeviceAt(index uint32) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.at(index) != nil
}

// GetDevice returns the device at index.
// It panics with ErrNoDevice if the slot is empty or out of range.
func (h *Holder) GetDevice(index uint32) Device {
	h.mu.Lock()
	defer h.mu.Unlock()
	dev := h.at(index)
	if dev == nil {
		panic(fmt.Errorf("%w %d (table size %d)", ErrNoDevice, index, len(h.devices)))
	}
	return dev
}

// FindDevice returns the index at which dev is registered, if any.
func (h *Holder) FindDevice(dev Device) (bool, uint32) {
	if dev == nil {
		return false, 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	index, found := h.find(dev)
	return found, index
}

// Deactivate removes the device at index from the table and deactivates it.
// It returns false if there was no device there.
func (h *Holder) Deactivate(index uint32) bool {
	h.mu.Lock()
	dev := h.at(index)
	if dev == nil {
		h.mu.Unlock()
		return false
	}
	h.devices[index] = nil
	h.mu.Unlock()

	klog.V(4).Infof("Deactivating device %d", index)
	dev.Deactivate()
	return true
}

// DeactivateAll deactivates every device in the table. The size of the table
// is preserved; all slots are left empty.
func (h *Holder) DeactivateAll() {
	h.mu.Lock()
	removed := h.clear()
	h.mu.Unlock()

	deactivate(removed)
}

// DisableDeactivateOnShutdown prevents Close from deactivating the remaining
// devices. This is useful if the devices are deactivated and powered off by
// other means. Once disabled, it cannot be enabled again.
func (h *Holder) DisableDeactivateOnShutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.keepOnShutdown = true
}

// DeactivateOnShutdown returns whether Close will deactivate remaining devices.
func (h *Holder) DeactivateOnShutdown() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.keepOnShutdown
}

// Shutdown stops the holder from accepting devices and, unless
// DisableDeactivateOnShutdown was called, deactivates every device in the
// table. Activations already in progress complete before the table is
// cleared, so no device stays active once Shutdown returns. Deactivation on
// shutdown is disabled afterwards. Shutdown returns the number of devices it
// deactivated.
//
// Shutdown must not be called from within Device.Activate.
func (h *Holder) Shutdown() int {
	h.mu.Lock()
	h.shutdown = true
	h.mu.Unlock()

	h.activating.Wait()

	h.mu.Lock()
	var removed []Device
	if !h.keepOnShutdown {
		removed = h.clear()
		h.keepOnShutdown = true
	}
	h.mu.Unlock()

	deactivate(removed)
	return len(removed)
}

// Close tears down the holder, deactivating all devices if still required.
func (h *Holder) Close() {
	h.mu.Lock()
	if h.keepOnShutdown {
		h.mu.Unlock()
		return
	}
	removed := h.clear()
	h.mu.Unlock()

	deactivate(removed)
}

// Move transfers the slot table and the shutdown responsibility to a new
// holder. The source is left empty with deactivation on shutdown disabled.
func (h *Holder) Move() *Holder {
	h.mu.Lock()
	defer h.mu.Unlock()

	moved := &Holder{
		devices:        h.devices,
		keepOnShutdown: h.keepOnShutdown,
		shutdown:       h.shutdown,
	}
	h.devices = nil
	h.keepOnShutdown = true
	return moved
}

// Assign replaces the contents of h with those of src. If h is still
// responsible for deactivation, its own devices are deactivated first. The
// source is left empty with deactivation on shutdown disabled.
func (h *Holder) Assign(src *Holder) {
	if src == h {
		return
	}
	h.Close()

	moved := src.Move()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.devices = moved.devices
	h.keepOnShutdown = moved.keepOnShutdown
	h.shutdown = moved.shutdown
}

// Devices returns a copy of the slot table. Empty slots are nil.
func (h *Holder) Devices() []Device {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Device(nil), h.devices...)
}

// Len returns the size of the slot table, including empty slots.
func (h *Holder) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.devices)
}

func (h *Holder) reserve(n uint32) bool {
	if n > MaxDeviceCount {
		n = MaxDeviceCount
	}
	if uint32(len(h.devices)) >= n {
		return false
	}
	h.devices = append(h.devices, make([]Device, int(n)-len(h.devices))...)
	return true
}

func (h *Holder) at(index uint32) Device {
	if index >= uint32(len(h.devices)) {
		return nil
	}
	return h.devices[index]
}

func (h *Holder) find(dev Device) (uint32, bool) {
	for i, d := range h.devices {
		if d != nil && d == dev {
			return uint32(i), true
		}
	}
	return 0, false
}

// clear empties every slot and returns the devices that were removed.
func (h *Holder) clear() []Device {
	var removed []Device
	for i, d := range h.devices {
		if d == nil {
			continue
		}
		removed = append(removed, d)
		h.devices[i] = nil
	}
	return removed
}

func (h *Holder) activate(dev Device, index uint32) {
	defer h.activating.Done()
	klog.V(4).Infof("Activating device %d", index)
	if err := dev.Activate(index); err != nil {
		klog.Warningf("Device %d reported an error on activation: %v", index, err)
	}
}

func deactivate(devices []Device) {
	for _, d := range devices {
		d.Deactivate()
	}
}
