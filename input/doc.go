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


// Package input opens the candidate stream for a finder.
//
// Input may come from a file or from standard input, and may be compressed:
// gzip and zstd streams are recognized by their magic bytes and decoded
// transparently, so a corpus written by the seeder with --zstd can be
// searched directly.
package input
