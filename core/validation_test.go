package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateHistoryEntry(t *testing.T) {
	validTime := time.Now().Add(-1 * time.Hour)
	futureTime := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		entry   *HistoryEntry
		wantErr error
	}{
		{
			name: "valid entry",
			entry: &HistoryEntry{
				Query:     "mr",
				Selection: "src/main.rs",
				Uses:      1,
				FirstUsed: validTime,
				LastUsed:  validTime,
			},
			wantErr: nil,
		},
		{
			name: "query only",
			entry: &HistoryEntry{
				Query:     "nothing matched",
				Uses:      2,
				FirstUsed: validTime,
				LastUsed:  validTime,
			},
			wantErr: nil,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantErr: ErrInvalidHistoryEntry,
		},
		{
			name: "empty query and selection",
			entry: &HistoryEntry{
				Uses:      1,
				FirstUsed: validTime,
				LastUsed:  validTime,
			},
			wantErr: ErrEmptyHistoryEntry,
		},
		{
			name: "zero uses",
			entry: &HistoryEntry{
				Query:     "q",
				FirstUsed: validTime,
				LastUsed:  validTime,
			},
			wantErr: ErrInvalidUses,
		},
		{
			name: "future timestamp",
			entry: &HistoryEntry{
				Query:     "q",
				Uses:      1,
				FirstUsed: validTime,
				LastUsed:  futureTime,
			},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHistoryEntry(tt.entry)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateHistoryEntry() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateHistoryEntry() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateHistoryEntry() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidHistoryEntry) {
				t.Errorf("ValidateHistoryEntry() error = %v, should wrap ErrInvalidHistoryEntry", err)
			}
		})
	}
}

func TestIsValidTimestamp(t *testing.T) {
	if !IsValidTimestamp(time.Now().Add(-time.Minute)) {
		t.Errorf("IsValidTimestamp() should accept past timestamps")
	}
	if !IsValidTimestamp(time.Time{}) {
		t.Errorf("IsValidTimestamp() should accept the zero time")
	}
	if IsValidTimestamp(time.Now().Add(time.Hour)) {
		t.Errorf("IsValidTimestamp() should reject future timestamps")
	}
}
