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

import "errors"

// Configuration validation errors
var (
	// ErrInvalidConfig indicates a SearchConfig failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidThreshold indicates a threshold outside [0, 1].
	ErrInvalidThreshold = errors.New("threshold should be between 0 and 1")

	// ErrInvalidDevice indicates a device other than cpu or cuda.
	ErrInvalidDevice = errors.New("device should be 'cpu' or 'cuda'")

	// ErrMissingSearchDir indicates the search directory is empty.
	ErrMissingSearchDir = errors.New("search directory is missing")

	// ErrMissingQuery indicates the query is empty.
	ErrMissingQuery = errors.New("query is missing")

	// ErrNegativeContentSize indicates a negative max content size.
	ErrNegativeContentSize = errors.New("max content size cannot be negative")

	// ErrNegativeMaxResults indicates a negative max results count.
	ErrNegativeMaxResults = errors.New("max results cannot be negative")
)
