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
#include <stdbool.h>
#include <stdint.h>
*/
import "C"

import (
	"runtime/cgo"

	"k8s.io/klog/v2"

	"github.com/NVIDIA/vr-driver-loader/internal/host"
)

func hostFor(handle C.uintptr_t) host.Interface {
	h, ok := cgo.Handle(handle).Value().(host.Interface)
	if !ok {
		klog.Errorf("Driver called back through an unknown host handle %v", uintptr(handle))
		return nil
	}
	return h
}

//export vrHostTrackedDeviceAdded
func vrHostTrackedDeviceAdded(handle C.uintptr_t, serial *C.char) C.bool {
	h := hostFor(handle)
	if h == nil {
		return false
	}
	return C.bool(h.TrackedDeviceAdded(C.GoString(serial)))
}

//export vrHostPoseUpdated
func vrHostPoseUpdated(handle C.uintptr_t, index C.uint32_t) {
	if h := hostFor(handle); h != nil {
		h.TrackedDevicePoseUpdated(uint32(index))
	}
}

//export vrHostPropertiesChanged
func vrHostPropertiesChanged(handle C.uintptr_t, index C.uint32_t) {
	if h := hostFor(handle); h != nil {
		h.TrackedDevicePropertiesChanged(uint32(index))
	}
}

//export vrHostVsyncEvent
func vrHostVsyncEvent(handle C.uintptr_t, offset C.double) {
	if h := hostFor(handle); h != nil {
		h.VsyncEvent(float64(offset))
	}
}

//export vrHostIsExiting
func vrHostIsExiting(handle C.uintptr_t) C.bool {
	h := hostFor(handle)
	if h == nil {
		return true
	}
	return C.bool(h.IsExiting())
}

//export vrDriverLog
func vrDriverLog(handle C.uintptr_t, msg *C.char) {
	if h := hostFor(handle); h != nil {
		h.Log(C.GoString(msg))
	}
}
