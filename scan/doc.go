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


// Package scan implements the search engine: deterministic traversal of a
// root set, per-file condition evaluation, field extraction for matches, and
// ordered delivery of tested/matched/exception events to an observer.
//
// The engine guarantees exactly one tested event per file examined, at most
// one matched event per file, and additive exception events that never
// suppress the tested event. Per-file failures are never fatal; only context
// cancellation or a sticky stop request end a run early, with no further
// events afterwards. The observer is responsible for bounding its own
// storage; the engine emits every event unconditionally.
package scan
