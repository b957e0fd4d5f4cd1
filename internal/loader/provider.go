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

	"github.com/NVIDIA/vr-driver-loader/internal/host"
)

var (
	// ErrNullProvider is returned when the factory entry point yields no provider.
	ErrNullProvider = errors.New("driver returned no server device provider")
	// ErrInitFailed is returned when the provider refuses to initialize.
	ErrInitFailed = errors.New("server device provider initialization failed")
)

// Provider is an initialized server device provider together with the module
// that implements it. The module stays mapped until the Provider is closed.
type Provider struct {
	ServerProvider
	module Module
	file   string
	closed bool
}

// AcquireOption configures Acquire.
type AcquireOption func(*acquireOptions)

type acquireOptions struct {
	beforeInit func(ServerProvider)
}

// WithBeforeInit registers f to be called with the provider before it is
// initialized. Drivers commonly report their devices from within Init, so
// callbacks that need the provider must be able to reach it by then.
func WithBeforeInit(f func(ServerProvider)) AcquireOption {
	return func(o *acquireOptions) {
		o.beforeInit = f
	}
}

// Acquire obtains the server device provider from the module held by l and
// initializes it with the host callback interface.
//
// The loader's module is consumed by this call whether or not it succeeds. On
// failure the module is unloaded and the loader cannot be used again.
func Acquire(l *Loader, h host.Interface, userDriverConfigDir string, opts ...AcquireOption) (*Provider, error) {
	var o acquireOptions
	for _, opt := range opts {
		opt(&o)
	}

	module, err := l.release()
	if err != nil {
		return nil, fmt.Errorf("unable to acquire provider: %w", err)
	}

	p, err := acquire(module, h, userDriverConfigDir, l.Root(), o.beforeInit)
	if err != nil {
		if closeErr := module.Close(); closeErr != nil {
			klog.Warningf("Error unloading driver module %v: %v", l.File(), closeErr)
		}
		return nil, err
	}

	klog.Infof("Acquired server device provider from %v", l.File())
	return &Provider{
		ServerProvider: p,
		module:         module,
		file:           l.File(),
	}, nil
}

func acquire(module Module, h host.Interface, userDriverConfigDir, driverInstallDir string, beforeInit func(ServerProvider)) (ServerProvider, error) {
	p, err := module.ServerProvider()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNullProvider, err)
	}
	if p == nil {
		return nil, ErrNullProvider
	}
	if beforeInit != nil {
		beforeInit(p)
	}
	if err := p.Init(h, userDriverConfigDir, driverInstallDir); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitFailed, err)
	}
	return p, nil
}

// Close cleans up the provider and unloads the module. It is a no-op if the
// provider was already closed.
func (p *Provider) Close() error {
	if p == nil || p.closed {
		return nil
	}
	p.closed = true

	p.ServerProvider.Cleanup()
	klog.Infof("Unloading driver module %v", p.file)
	return p.module.Close()
}
