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

// Device represents a tracked device handle owned by the native driver.
// Implementations must be comparable: the registry identifies devices by
// equality of the Device value, so native wrappers should be value types
// around the underlying object pointer and test doubles should be pointers.
//
//go:generate moq -stub -out device_mock.go . Device
type Device interface {
	// Activate is called once the device has been assigned its permanent
	// index in the registry.
	Activate(index uint32) error
	// Deactivate is called when the device is removed from the registry.
	Deactivate()
}
