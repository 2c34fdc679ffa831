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


// Package results provides monitor implementations that consume scan
// engine events: bounded in-memory collection, progress reporting,
// asynchronous fan-out, and persistence to a run repository.
//
// The engine emits every event unconditionally; any bounding of what is
// kept happens here, on the sink side. Counters always reflect the full
// event stream even when storage caps discard individual rows.
package results
