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


// Package tui is sift's interactive terminal interface.
//
// An Interface draws a prompt, an optional match count and a window of ranked
// results on a tcell.Screen, and edits the query in response to key events.
// Searches are deferred until the event queue is drained, so a burst of
// keystrokes, such as a paste, triggers a single search.
//
// Run returns the selected candidate when the user accepts, or the query
// itself if nothing matched. ErrAborted is returned when the user cancels.
package tui
