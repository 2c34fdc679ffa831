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


// Package condition provides the composable boolean predicate tree that
// decides whether a file matches a search.
//
// A tree is built from And/Or/Not combinators over leaf predicates such as
// name, size, timestamp and content matches. And/Or short-circuit left to
// right; this is a semantic contract, not just an optimization, because
// leaves may expose named captures and a short-circuited leaf never records
// them. Captures are returned explicitly in the evaluation Outcome and can be
// consumed as virtual field sources by the header resolver.
package condition
