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


// Package native provides the built-in parser and extractor components.
//
// These components have no external service dependencies and back the
// universal strategy's defaults: the "text" parser is the fallback for
// unrecognized file extensions, and the "file-info" and "content-stats"
// extractors form the default extractor set.
//
// Call Register to add all native components to a registry:
//
//	reg := component.NewRegistry()
//	err := native.Register(reg)
package native
