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

import (
	"fmt"
	"time"
)

// ValidateHistoryEntry checks that an entry is safe to persist.
func ValidateHistoryEntry(entry *HistoryEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidHistoryEntry)
	}

	if entry.Query == "" && entry.Selection == "" {
		return fmt.Errorf("%w: %w", ErrInvalidHistoryEntry, ErrEmptyHistoryEntry)
	}

	if entry.Uses < 1 {
		return fmt.Errorf("%w: %w", ErrInvalidHistoryEntry, ErrInvalidUses)
	}

	if !IsValidTimestamp(entry.FirstUsed) || !IsValidTimestamp(entry.LastUsed) {
		return fmt.Errorf("%w: %w", ErrInvalidHistoryEntry, ErrInvalidTimestamp)
	}

	return nil
}

// IsValidTimestamp reports whether ts is not in the future.
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
