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

package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
)

func TestFilesReportsCreation(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "driver_lighthouse.so")

	watcher, err := Files(dir)
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, os.WriteFile(file, []byte("ELF"), 0644))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case event := <-watcher.Events:
			if IsCreated(event, file) {
				return
			}
		case err := <-watcher.Errors:
			require.NoError(t, err)
		case <-timeout:
			t.Fatalf("no create event for %v", file)
		}
	}
}

func TestFilesMoveAwayAndBack(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "driver_lighthouse.so")
	backup := file + ".bak"
	require.NoError(t, os.WriteFile(file, []byte("ELF"), 0644))

	watcher, err := Files(dir)
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, os.Rename(file, backup))
	require.NoError(t, os.Rename(backup, file))

	var created []bool
	timeout := time.After(5 * time.Second)
	for {
		select {
		case event := <-watcher.Events:
			if filepath.Clean(event.Name) != file {
				continue
			}
			created = append(created, IsCreated(event, file))
			if IsCreated(event, file) {
				require.Equal(t, []bool{false, true}, created, "moving the module away is not a creation")
				return
			}
		case err := <-watcher.Errors:
			require.NoError(t, err)
		case <-timeout:
			t.Fatalf("no create event for %v, saw %v", file, created)
		}
	}
}

func TestFilesMissingPath(t *testing.T) {
	_, err := Files(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestIsCreated(t *testing.T) {
	testCases := []struct {
		description string
		event       fsnotify.Event
		expected    bool
	}{
		{
			description: "create",
			event:       fsnotify.Event{Name: "/d/driver.so", Op: fsnotify.Create},
			expected:    true,
		},
		{
			description: "create with unclean path",
			event:       fsnotify.Event{Name: "/d/./driver.so", Op: fsnotify.Create},
			expected:    true,
		},
		{
			description: "moved away",
			event:       fsnotify.Event{Name: "/d/driver.so", Op: fsnotify.Rename},
			expected:    false,
		},
		{
			description: "removed",
			event:       fsnotify.Event{Name: "/d/driver.so", Op: fsnotify.Remove},
			expected:    false,
		},
		{
			description: "write",
			event:       fsnotify.Event{Name: "/d/driver.so", Op: fsnotify.Write},
			expected:    false,
		},
		{
			description: "other file",
			event:       fsnotify.Event{Name: "/d/other.so", Op: fsnotify.Create},
			expected:    false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			require.Equal(t, tc.expected, IsCreated(tc.event, "/d/driver.so"))
		})
	}
}
