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
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// IDMUS serializes an ID as an unsigned varint.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

// HistoryEntryMUS serializes a HistoryEntry field by field.
// Timestamps are stored as Unix microseconds in UTC.
var HistoryEntryMUS = historyEntryMUS{}

type historyEntryMUS struct{}

func (historyEntryMUS) Marshal(v HistoryEntry, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Query, bs[n:])
	n += ord.String.Marshal(v.Selection, bs[n:])
	n += varint.Int64.Marshal(int64(v.Uses), bs[n:])
	n += varint.Int64.Marshal(v.FirstUsed.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(v.LastUsed.UnixMicro(), bs[n:])
	return n
}

func (historyEntryMUS) Unmarshal(bs []byte) (v HistoryEntry, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Query, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Selection, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var uses, first, last int64
	uses, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Uses = int(uses)
	first, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.FirstUsed = time.UnixMicro(first).UTC()
	last, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.LastUsed = time.UnixMicro(last).UTC()
	return
}

func (historyEntryMUS) Size(v HistoryEntry) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Query)
	size += ord.String.Size(v.Selection)
	size += varint.Int64.Size(int64(v.Uses))
	size += varint.Int64.Size(v.FirstUsed.UnixMicro())
	return size + varint.Int64.Size(v.LastUsed.UnixMicro())
}
