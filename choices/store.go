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


package choices

import (
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/sift/core"
)

const (
	// initialBufferCapacity is the starting size of the read buffer used by ReadFrom.
	initialBufferCapacity = 4096

	// initialChoiceCapacity is the starting size of the candidate table.
	initialChoiceCapacity = 128
)

// Store is an append-only, ordered collection of candidates.
type Store struct {
	chunks     []string
	candidates []core.Candidate
	size       int // Total bytes ingested
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		candidates: make([]core.Candidate, 0, initialChoiceCapacity),
	}
}

// Append splits block on delimiter and adds each non-empty line as a
// candidate, preserving order. It returns the number of candidates added.
func (s *Store) Append(block []byte, delimiter byte) int {
	return s.appendChunk(string(block), delimiter)
}

// AppendString is like Append but keeps block itself as the backing chunk.
func (s *Store) AppendString(block string, delimiter byte) int {
	return s.appendChunk(block, delimiter)
}

func (s *Store) appendChunk(chunk string, delimiter byte) int {
	if len(chunk) == 0 {
		return 0
	}
	s.chunks = append(s.chunks, chunk)
	s.size += len(chunk)

	added := 0
	for len(chunk) > 0 {
		line := chunk
		if i := strings.IndexByte(chunk, delimiter); i >= 0 {
			line, chunk = chunk[:i], chunk[i+1:]
		} else {
			chunk = ""
		}
		if line == "" {
			continue
		}
		s.candidates = append(s.candidates, core.Candidate{
			Text:  line,
			Index: len(s.candidates),
		})
		added++
	}
	return added
}

// ReadFrom reads r to EOF and appends its contents split on delimiter.
// It returns the number of bytes read.
func (s *Store) ReadFrom(r io.Reader, delimiter byte) (int64, error) {
	// The builder's string shares its buffer, so the stream is held once.
	var buf strings.Builder
	buf.Grow(initialBufferCapacity)
	n, err := io.Copy(&buf, r)
	if err != nil {
		return n, fmt.Errorf("reading candidates: %w", err)
	}
	s.appendChunk(buf.String(), delimiter)
	return n, nil
}

// Len returns the number of candidates.
func (s *Store) Len() int {
	return len(s.candidates)
}

// Size returns the number of bytes ingested, delimiters included.
func (s *Store) Size() int {
	return s.size
}

// Get returns the candidate at index. It panics if index is out of range.
func (s *Store) Get(index int) core.Candidate {
	return s.candidates[index]
}

// Slice returns the candidates in [start, end). The returned slice must not
// be modified.
func (s *Store) Slice(start, end int) []core.Candidate {
	return s.candidates[start:end:end]
}
