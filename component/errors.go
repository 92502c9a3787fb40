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


package component

import "errors"

var (
	// ErrDuplicateComponent is returned when a (kind, name) pair is registered twice.
	ErrDuplicateComponent = errors.New("component already registered")

	// ErrUnknownComponent is returned when resolving a (kind, name) pair that
	// was never registered.
	ErrUnknownComponent = errors.New("unknown component")

	// ErrRegistrySealed is returned when registering after the registry has
	// been sealed.
	ErrRegistrySealed = errors.New("registry is sealed")

	// ErrNilFactory is returned when registering a nil factory.
	ErrNilFactory = errors.New("factory cannot be nil")

	// ErrEmptyComponentName is returned when registering with an empty name.
	ErrEmptyComponentName = errors.New("component name cannot be empty")
)
