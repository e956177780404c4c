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


package storage

import (
	"fmt"
	"math"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/wellwise/core"
)

// formatVersion prefixes every encoded record.
const formatVersion byte = 1

// writer encodes fields in two passes: with a nil buffer it only sums
// sizes, then it writes into a buffer of exactly that size.
type writer struct {
	bs []byte
	n  int
}

func encode(fn func(w *writer)) []byte {
	w := &writer{}
	fn(w)
	w.bs = make([]byte, w.n)
	w.n = 0
	fn(w)
	return w.bs
}

func (w *writer) version() {
	if w.bs != nil {
		w.bs[w.n] = formatVersion
	}
	w.n++
}

func (w *writer) uint64(v uint64) {
	if w.bs == nil {
		w.n += varint.Uint64.Size(v)
		return
	}
	w.n += varint.Uint64.Marshal(v, w.bs[w.n:])
}

func (w *writer) int64(v int64) {
	if w.bs == nil {
		w.n += varint.Int64.Size(v)
		return
	}
	w.n += varint.Int64.Marshal(v, w.bs[w.n:])
}

func (w *writer) string(v string) {
	if w.bs == nil {
		w.n += ord.String.Size(v)
		return
	}
	w.n += ord.String.Marshal(v, w.bs[w.n:])
}

func (w *writer) strings(vs []string) {
	w.uint64(uint64(len(vs)))
	for _, v := range vs {
		w.string(v)
	}
}

func (w *writer) vector(vs []float32) {
	w.uint64(uint64(len(vs)))
	for _, v := range vs {
		bits := math.Float32bits(v)
		if w.bs == nil {
			w.n += varint.Uint32.Size(bits)
			continue
		}
		w.n += varint.Uint32.Marshal(bits, w.bs[w.n:])
	}
}

// time stores microseconds since the epoch; the zero time is stored as 0.
func (w *writer) time(t time.Time) {
	if t.IsZero() {
		w.int64(0)
		return
	}
	w.int64(t.UnixMicro())
}

// reader decodes fields in order and remembers the first error.
type reader struct {
	bs  []byte
	n   int
	err error
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
}

func (r *reader) version() {
	if r.n >= len(r.bs) {
		r.fail(ErrTruncatedData)
		return
	}
	if v := r.bs[r.n]; v != formatVersion {
		r.fail(fmt.Errorf("%w: %d", ErrUnknownVersion, v))
		return
	}
	r.n++
}

func (r *reader) uint64() uint64 {
	if r.err != nil {
		return 0
	}
	v, n, err := varint.Uint64.Unmarshal(r.bs[r.n:])
	if err != nil {
		r.fail(err)
		return 0
	}
	r.n += n
	return v
}

func (r *reader) int64() int64 {
	if r.err != nil {
		return 0
	}
	v, n, err := varint.Int64.Unmarshal(r.bs[r.n:])
	if err != nil {
		r.fail(err)
		return 0
	}
	r.n += n
	return v
}

func (r *reader) string() string {
	if r.err != nil {
		return ""
	}
	v, n, err := ord.String.Unmarshal(r.bs[r.n:])
	if err != nil {
		r.fail(err)
		return ""
	}
	r.n += n
	return v
}

// length reads a collection length, rejecting counts that cannot fit in
// the remaining bytes (every element takes at least one).
func (r *reader) length() int {
	l := r.uint64()
	if r.err != nil {
		return 0
	}
	if l > uint64(len(r.bs)-r.n) {
		r.fail(ErrTruncatedData)
		return 0
	}
	return int(l)
}

func (r *reader) strings() []string {
	l := r.length()
	if l == 0 {
		return nil
	}
	out := make([]string, 0, l)
	for i := 0; i < l && r.err == nil; i++ {
		out = append(out, r.string())
	}
	return out
}

func (r *reader) vector() []float32 {
	l := r.length()
	if l == 0 {
		return nil
	}
	out := make([]float32, 0, l)
	for i := 0; i < l; i++ {
		bits, n, err := varint.Uint32.Unmarshal(r.bs[r.n:])
		if err != nil {
			r.fail(err)
			return nil
		}
		r.n += n
		out = append(out, math.Float32frombits(bits))
	}
	return out
}

func (r *reader) time() time.Time {
	v := r.int64()
	if v == 0 {
		return time.Time{}
	}
	return time.UnixMicro(v).UTC()
}

func (r *reader) done() error {
	if r.err == nil && r.n != len(r.bs) {
		r.fail(fmt.Errorf("%d trailing bytes", len(r.bs)-r.n))
	}
	return r.err
}

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	return encode(func(w *writer) { w.uint64(uint64(id)) })
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	r := &reader{bs: data}
	id := core.ID(r.uint64())
	return id, r.done()
}

// MarshalSymptomRecord serializes a SymptomRecord to bytes.
func MarshalSymptomRecord(record *core.SymptomRecord) []byte {
	return encode(func(w *writer) {
		w.version()
		w.uint64(uint64(record.Id))
		w.string(record.Name)
		w.strings(record.Diseases)
		w.vector(record.Vector)
		w.time(record.InsertedAt)
		w.time(record.UpdatedAt)
	})
}

// UnmarshalSymptomRecord deserializes a SymptomRecord from bytes.
func UnmarshalSymptomRecord(data []byte) (*core.SymptomRecord, error) {
	r := &reader{bs: data}
	r.version()
	record := &core.SymptomRecord{
		Id:         core.ID(r.uint64()),
		Name:       r.string(),
		Diseases:   r.strings(),
		Vector:     r.vector(),
		InsertedAt: r.time(),
		UpdatedAt:  r.time(),
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	return record, nil
}

// MarshalFAQRecord serializes an FAQRecord to bytes.
func MarshalFAQRecord(record *core.FAQRecord) []byte {
	return encode(func(w *writer) {
		w.version()
		w.uint64(uint64(record.Id))
		w.string(record.Question)
		w.string(record.Answer)
		w.vector(record.Vector)
		w.time(record.InsertedAt)
		w.time(record.UpdatedAt)
	})
}

// UnmarshalFAQRecord deserializes an FAQRecord from bytes.
func UnmarshalFAQRecord(data []byte) (*core.FAQRecord, error) {
	r := &reader{bs: data}
	r.version()
	record := &core.FAQRecord{
		Id:         core.ID(r.uint64()),
		Question:   r.string(),
		Answer:     r.string(),
		Vector:     r.vector(),
		InsertedAt: r.time(),
		UpdatedAt:  r.time(),
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	return record, nil
}

// MarshalIndexStamp serializes an IndexStamp to bytes.
func MarshalIndexStamp(stamp *core.IndexStamp) []byte {
	return encode(func(w *writer) {
		w.version()
		w.string(stamp.Corpus)
		w.string(stamp.Model)
		w.string(stamp.Digest)
		w.int64(int64(stamp.Count))
		w.time(stamp.UpdatedAt)
	})
}

// UnmarshalIndexStamp deserializes an IndexStamp from bytes.
func UnmarshalIndexStamp(data []byte) (*core.IndexStamp, error) {
	r := &reader{bs: data}
	r.version()
	stamp := &core.IndexStamp{
		Corpus:    r.string(),
		Model:     r.string(),
		Digest:    r.string(),
		Count:     int(r.int64()),
		UpdatedAt: r.time(),
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	return stamp, nil
}
