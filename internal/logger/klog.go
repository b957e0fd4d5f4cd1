/**
# Copyright 2024 NVIDIA CORPORATION
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

package logger

import (
	"strings"

	"k8s.io/klog/v2"
)

// Interface is the logger used for messages that originate in the native
// driver rather than in this module.
type Interface interface {
	Info(args ...interface{})
	Warning(args ...interface{})
}

type toKlog struct{}

// ToKlog allows the klog logger to be passed to functions where this is needed.
var ToKlog Interface = &toKlog{}

// Info forwards the arguments to the klog.Info function.
func (l toKlog) Info(args ...interface{}) {
	klog.InfoDepth(1, args...)
}

// Warning forwards the arguments to the klog.Warning function.
func (l toKlog) Warning(args ...interface{}) {
	klog.WarningDepth(1, args...)
}

// DriverLine trims the trailing newline that native drivers append to each
// log message.
func DriverLine(msg string) string {
	return strings.TrimRight(msg, "\r\n")
}
