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

package locate

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

const pathRegistryFile = "openvrpaths.vrpath"

// pathRegistry holds the fields of the OpenVR path registry that are relevant
// for locating a driver.
type pathRegistry struct {
	Runtime []string `json:"runtime"`
	Config  []string `json:"config"`
	Log     []string `json:"log"`
	Version int      `json:"version"`
}

// readPathRegistry reads the path registry at the specified location.
func readPathRegistry(path string) (*pathRegistry, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading path registry: %w", err)
	}

	var registry pathRegistry
	if err := yaml.Unmarshal(contents, &registry); err != nil {
		return nil, fmt.Errorf("error parsing path registry %v: %w", path, err)
	}
	return &registry, nil
}
