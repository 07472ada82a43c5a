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


// Package choices holds the corpus of candidates a search ranks.
//
// A Store is append-only: ingesting more text never removes or reorders
// existing candidates. Each Append copies the incoming block once into an
// immutable chunk and every candidate's Text aliases that chunk, so
// candidates handed to an in-flight search stay valid while the store grows.
//
// # Thread Safety
//
// A Store is not synchronized. It may be read concurrently (as a search does),
// but Append must not run while a search over the same store is in flight.
package choices
