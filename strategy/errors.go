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


package strategy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStrategyNotFound indicates a strategy reference that matches no
// declared strategy. Match with errors.Is; the concrete error is a
// *NotFoundError carrying the requested and available names.
var ErrStrategyNotFound = errors.New("strategy not found")

// ErrDuplicateStrategy indicates two declared strategies share a name.
var ErrDuplicateStrategy = errors.New("duplicate strategy name")

// ErrEmptyStrategyName indicates a declared strategy without a name.
var ErrEmptyStrategyName = errors.New("strategy name cannot be empty")

// NotFoundError reports a strategy reference that does not match any
// declared strategy. It lists the declared names so configuration
// typos are obvious from the message alone.
type NotFoundError struct {
	// Requested is the strategy reference that failed to resolve.
	Requested string

	// Available holds the declared strategy names, sorted.
	Available []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("strategy %q not found: no strategies declared", e.Requested)
	}
	return fmt.Sprintf("strategy %q not found: declared strategies are %s",
		e.Requested, strings.Join(e.Available, ", "))
}

// Is makes errors.Is(err, ErrStrategyNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrStrategyNotFound
}
