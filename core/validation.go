// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"math"
	"strings"
)

// Validate checks a SearchConfig against the configuration rules.
//
// Validation rules:
//   - Threshold must be within [0, 1]
//   - Device must be auto, cpu or cuda
//   - SearchDir and Query must not be empty
//   - MaxContentSize and MaxResults must not be negative
//
// NOT validated (checked by the collaborators that use them):
//   - SearchDir existence (enumeration reports it)
//   - Device availability (the embedding backend reports it)
func (c *SearchConfig) Validate() error {
	if math.IsNaN(c.Threshold) || c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrInvalidThreshold)
	}

	if err := ValidateDevice(c.Device); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if strings.TrimSpace(c.SearchDir) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrMissingSearchDir)
	}

	if strings.TrimSpace(c.Query) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrMissingQuery)
	}

	if c.MaxContentSize < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrNegativeContentSize)
	}

	if c.MaxResults < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrNegativeMaxResults)
	}

	return nil
}

// ValidateDevice validates that a Device has a known value.
func ValidateDevice(d Device) error {
	switch d {
	case DeviceAuto, DeviceCPU, DeviceCUDA:
		return nil
	}
	return fmt.Errorf("%w: value %q", ErrInvalidDevice, string(d))
}

// ParseDevice converts a user supplied device name into a Device.
// The empty string and "auto" both select DeviceAuto.
func ParseDevice(s string) (Device, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "auto" {
		return DeviceAuto, nil
	}
	d := Device(name)
	if err := ValidateDevice(d); err != nil {
		return DeviceAuto, err
	}
	return d, nil
}
