/*
 * Copyright (c) 2022, NVIDIA CORPORATION.  All rights reserved.
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

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Duration is an interval such as the run-frame period of the provider. It
// is written as a Go duration string, or as "infinite" to disable polling.
type Duration time.Duration

// IsInfinite returns whether d was configured as "infinite".
func (d *Duration) IsInfinite() bool {
	return d != nil && time.Duration(*d) == math.MaxInt64
}

// Polls returns whether d describes a finite, positive polling interval.
func (d *Duration) Polls() bool {
	return d != nil && !d.IsInfinite() && *d > 0
}

// String returns a human-readable representation of the duration.
func (d Duration) String() string {
	if d.IsInfinite() {
		return "infinite"
	}
	return time.Duration(d).String()
}

// MarshalJSON writes d in the same string form that UnmarshalJSON accepts.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a duration string, "infinite" or a number of
// nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.parse(value)
	default:
		return fmt.Errorf("invalid duration %s", b)
	}
}

func (d *Duration) parse(value string) error {
	if value == "infinite" {
		*d = Duration(math.MaxInt64)
		return nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// DurationValue is a cli.Generic for Duration flags such as
// --run-frame-interval.
type DurationValue struct {
	Value *Duration
}

// NewDurationValue returns a flag value defaulting to d.
func NewDurationValue(d time.Duration) *DurationValue {
	duration := Duration(d)
	return &DurationValue{Value: &duration}
}

// Set implements cli.Generic
func (d *DurationValue) Set(value string) error {
	return d.Value.parse(value)
}

// String implements cli.Generic
func (d *DurationValue) String() string {
	if d.Value == nil {
		return ""
	}
	return d.Value.String()
}
