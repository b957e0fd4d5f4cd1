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
	"errors"
	"fmt"

	"k8s.io/klog/v2"
)

var (
	// ErrNotLoaded is returned when the module was never successfully opened.
	ErrNotLoaded = errors.New("driver module not loaded")
	// ErrConsumed is returned when a loader is used after a provider was
	// acquired from it.
	ErrConsumed = errors.New("driver module already handed over to a provider")
)

// Loader owns a mapped driver module until a provider is acquired from it.
//
// Opening the module happens once, in New. A failure to open is recorded in
// the Loader rather than returned, since a missing or incompatible driver is
// an expected condition on many machines.
type Loader struct {
	root   string
	file   string
	module Module
	err    error
}

// New opens the driver module at file using the specified opener.
func New(opener Opener, root, file string) *Loader {
	l := &Loader{
		root: root,
		file: file,
	}

	klog.Infof("Loading driver module %v", file)
	module, err := opener(root, file)
	l.module = module
	if err != nil {
		l.err = fmt.Errorf("error opening driver module %v: %w", file, err)
		klog.Warning(l.err)
		return l
	}
	if module == nil {
		l.err = fmt.Errorf("error opening driver module %v: %w", file, ErrNotLoaded)
		klog.Warning(l.err)
		return l
	}

	if mapped, err := Mapped(file); err == nil {
		klog.V(4).Infof("Driver module %v mapped into process: %v", file, mapped)
	}
	return l
}

// Succeeded returns whether the module was opened and its entry point found.
func (l *Loader) Succeeded() bool {
	return l != nil && l.module != nil && l.err == nil
}

// Err returns the reason the module could not be used, if any.
func (l *Loader) Err() error {
	switch {
	case l == nil:
		return ErrConsumed
	case l.err != nil:
		return l.err
	case l.module == nil:
		return ErrConsumed
	}
	return nil
}

// Root returns the install directory of the driver.
func (l *Loader) Root() string {
	return l.root
}

// File returns the path of the driver module.
func (l *Loader) File() string {
	return l.file
}

// IsHMDPresent asks the driver whether a headset is attached. It returns
// false if the module is not usable.
func (l *Loader) IsHMDPresent(rootConfigDir string) bool {
	if !l.Succeeded() {
		return false
	}
	return l.module.IsHMDPresent(rootConfigDir)
}

// Close unmaps the module if it is still owned by the loader.
func (l *Loader) Close() error {
	if l == nil || l.module == nil {
		return nil
	}
	module := l.module
	l.module = nil
	klog.Infof("Unloading driver module %v", l.file)
	return module.Close()
}

// release hands the module over to the caller. The loader no longer owns a
// module afterwards, whatever the outcome.
func (l *Loader) release() (Module, error) {
	if err := l.Err(); err != nil {
		if closeErr := l.Close(); closeErr != nil {
			klog.Warningf("Error unloading unusable driver module: %v", closeErr)
		}
		return nil, err
	}
	module := l.module
	l.module = nil
	l.err = ErrConsumed
	return module, nil
}
