//go:build !linux || !cgo

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

import (
	"fmt"

	"github.com/NVIDIA/vr-driver-loader/internal/loader"
)

var _ loader.Opener = Open

// Open always fails in builds without native module support.
func Open(root, file string) (loader.Module, error) {
	return nil, fmt.Errorf("%w: %v", ErrUnsupported, file)
}
