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

package driver

import (
	"github.com/NVIDIA/vr-driver-loader/internal/host"
	"github.com/NVIDIA/vr-driver-loader/internal/loader"
	"github.com/NVIDIA/vr-driver-loader/internal/locate"
	"github.com/NVIDIA/vr-driver-loader/internal/logger"
)

// Locator finds the installed driver.
type Locator interface {
	Locate() locate.DriverLocation
}

// Option is a function that configures a Session.
type Option func(*options)

type options struct {
	locator Locator
	opener  loader.Opener
	host    host.Interface
	logger  logger.Interface
	locate  []locate.Option
}

// WithLocator sets the locator used to find the driver. It takes precedence
// over WithLocateOptions.
func WithLocator(locator Locator) Option {
	return func(o *options) {
		o.locator = locator
	}
}

// WithLocateOptions configures the default locator.
func WithLocateOptions(opts ...locate.Option) Option {
	return func(o *options) {
		o.locate = append(o.locate, opts...)
	}
}

// WithOpener sets the function used to map the driver module.
func WithOpener(opener loader.Opener) Option {
	return func(o *options) {
		o.opener = opener
	}
}

// WithHost supplies the host callback object handed to the driver. The
// session does not take ownership; the caller keeps it alive for as long as
// the session exists and is responsible for routing device additions.
func WithHost(h host.Interface) Option {
	return func(o *options) {
		o.host = h
	}
}

// WithLogger sets the logger receiving driver log lines when the session
// creates its own host.
func WithLogger(l logger.Interface) Option {
	return func(o *options) {
		o.logger = l
	}
}
