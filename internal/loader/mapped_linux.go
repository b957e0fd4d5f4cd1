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
	"fmt"
	"path/filepath"

	"github.com/prometheus/procfs"
)

// Mapped reports whether the shared object at file is mapped into the
// current process, according to /proc/self/maps.
func Mapped(file string) (bool, error) {
	self, err := procfs.Self()
	if err != nil {
		return false, fmt.Errorf("error opening /proc/self: %w", err)
	}
	maps, err := self.ProcMaps()
	if err != nil {
		return false, fmt.Errorf("error reading process mappings: %w", err)
	}

	candidates := map[string]bool{filepath.Clean(file): true}
	if resolved, err := filepath.EvalSymlinks(file); err == nil {
		candidates[resolved] = true
	}

	for _, m := range maps {
		if candidates[m.Pathname] {
			return true, nil
		}
	}
	return false, nil
}
