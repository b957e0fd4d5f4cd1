/*
 * Copyright (c) 2024, NVIDIA CORPORATION.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package v1

import "time"

// Defaults for the driver and its provider. DefaultDriverName is the SteamVR
// tracking driver and is also what the locator searches for when no name is
// given.
const (
	DefaultDriverName       = "lighthouse"
	DefaultRunFrameInterval = 10 * time.Millisecond
)

// Command line flag names - Common flags
const (
	FlagSteamRoot            = "steam-root"
	FlagDriverName           = "driver-name"
	FlagPathRegistry         = "vrpath-registry"
	FlagFailOnInitError      = "fail-on-init-error"
	FlagDeactivateOnShutdown = "deactivate-on-shutdown"
	FlagConfigFile           = "config-file"
)

// Command line flag names - Provider specific flags
const (
	FlagStartProvider    = "start-provider"
	FlagRunFrameInterval = "run-frame-interval"
	FlagWatchDriver      = "watch-driver"
)
