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
	"errors"
	"time"

	mus "github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the domain types stored in BadgerDB.
// Timestamps are encoded as Unix microseconds.

var errNegativeLength = errors.New("negative length")

// IDMUS serializes ID values.
var IDMUS = idMUS{}

type idMUS struct{}

var _ mus.Serializer[ID] = IDMUS

func (idMUS) Marshal(v ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return ID(num), n, err
}

func (idMUS) Size(v ID) int {
	return varint.Uint64.Size(uint64(v))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// timeMUS serializes time.Time values as Unix microseconds.
type timeMUS struct{}

func (timeMUS) Marshal(v time.Time, bs []byte) int {
	return varint.Int64.Marshal(v.UnixMicro(), bs)
}

func (timeMUS) Unmarshal(bs []byte) (time.Time, int, error) {
	num, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(num).UTC(), n, nil
}

func (timeMUS) Size(v time.Time) int {
	return varint.Int64.Size(v.UnixMicro())
}

func (timeMUS) Skip(bs []byte) (int, error) {
	return varint.Int64.Skip(bs)
}

// stringsMUS serializes string slices with a leading length.
type stringsMUS struct{}

func (stringsMUS) Marshal(v []string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, s := range v {
		n += ord.String.Marshal(s, bs[n:])
	}
	return n
}

func (stringsMUS) Unmarshal(bs []byte) (v []string, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length < 0 {
		return nil, n, errNegativeLength
	}
	if length == 0 {
		return nil, n, nil
	}
	v = make([]string, length)
	for i := 0; i < length; i++ {
		var (
			s string
			m int
		)
		s, m, err = ord.String.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return nil, n, err
		}
		v[i] = s
	}
	return v, n, nil
}

func (stringsMUS) Size(v []string) (size int) {
	size = varint.Int.Size(len(v))
	for _, s := range v {
		size += ord.String.Size(s)
	}
	return size
}

func (stringsMUS) Skip(bs []byte) (n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return n, err
	}
	if length < 0 {
		return n, errNegativeLength
	}
	for i := 0; i < length; i++ {
		var m int
		m, err = ord.String.Skip(bs[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// RunMUS serializes Run values.
var RunMUS = runMUS{}

type runMUS struct{}

var _ mus.Serializer[Run] = RunMUS

func (runMUS) Marshal(v Run, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += stringsMUS{}.Marshal(v.Roots, bs[n:])
	n += ord.String.Marshal(v.Query, bs[n:])
	n += stringsMUS{}.Marshal(v.Headers, bs[n:])
	n += varint.Int.Marshal(int(v.Status), bs[n:])
	n += varint.Uint64.Marshal(v.Tested, bs[n:])
	n += varint.Uint64.Marshal(v.Matched, bs[n:])
	n += varint.Uint64.Marshal(v.Exceptions, bs[n:])
	n += timeMUS{}.Marshal(v.StartedAt, bs[n:])
	n += timeMUS{}.Marshal(v.FinishedAt, bs[n:])
	return n
}

func (runMUS) Unmarshal(bs []byte) (v Run, n int, err error) {
	var m int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return v, n, err
	}
	if v.Roots, m, err = (stringsMUS{}).Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.Query, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.Headers, m, err = (stringsMUS{}).Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	var status int
	if status, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	v.Status = RunStatus(status)
	if v.Tested, m, err = varint.Uint64.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.Matched, m, err = varint.Uint64.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.Exceptions, m, err = varint.Uint64.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.StartedAt, m, err = (timeMUS{}).Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.FinishedAt, m, err = (timeMUS{}).Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	return v, n, nil
}

func (runMUS) Size(v Run) (size int) {
	size = IDMUS.Size(v.Id)
	size += stringsMUS{}.Size(v.Roots)
	size += ord.String.Size(v.Query)
	size += stringsMUS{}.Size(v.Headers)
	size += varint.Int.Size(int(v.Status))
	size += varint.Uint64.Size(v.Tested)
	size += varint.Uint64.Size(v.Matched)
	size += varint.Uint64.Size(v.Exceptions)
	size += timeMUS{}.Size(v.StartedAt)
	size += timeMUS{}.Size(v.FinishedAt)
	return size
}

func (runMUS) Skip(bs []byte) (n int, err error) {
	skippers := []func([]byte) (int, error){
		IDMUS.Skip,
		stringsMUS{}.Skip,
		ord.String.Skip,
		stringsMUS{}.Skip,
		varint.Int.Skip,
		varint.Uint64.Skip,
		varint.Uint64.Skip,
		varint.Uint64.Skip,
		timeMUS{}.Skip,
		timeMUS{}.Skip,
	}
	for _, skip := range skippers {
		var m int
		m, err = skip(bs[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// MatchRecordMUS serializes MatchRecord values.
var MatchRecordMUS = matchRecordMUS{}

type matchRecordMUS struct{}

var _ mus.Serializer[MatchRecord] = MatchRecordMUS

func (matchRecordMUS) Marshal(v MatchRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.RunId, bs[n:])
	n += ord.String.Marshal(v.Filename, bs[n:])
	n += ord.String.Marshal(v.Path, bs[n:])
	n += stringsMUS{}.Marshal(v.Values, bs[n:])
	n += varint.Uint64.Marshal(v.Seq, bs[n:])
	n += timeMUS{}.Marshal(v.RecordedAt, bs[n:])
	return n
}

func (matchRecordMUS) Unmarshal(bs []byte) (v MatchRecord, n int, err error) {
	var m int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return v, n, err
	}
	if v.RunId, m, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.Filename, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.Path, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.Values, m, err = (stringsMUS{}).Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.Seq, m, err = varint.Uint64.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.RecordedAt, m, err = (timeMUS{}).Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	return v, n, nil
}

func (matchRecordMUS) Size(v MatchRecord) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.RunId)
	size += ord.String.Size(v.Filename)
	size += ord.String.Size(v.Path)
	size += stringsMUS{}.Size(v.Values)
	size += varint.Uint64.Size(v.Seq)
	size += timeMUS{}.Size(v.RecordedAt)
	return size
}

func (matchRecordMUS) Skip(bs []byte) (n int, err error) {
	skippers := []func([]byte) (int, error){
		IDMUS.Skip,
		IDMUS.Skip,
		ord.String.Skip,
		ord.String.Skip,
		stringsMUS{}.Skip,
		varint.Uint64.Skip,
		timeMUS{}.Skip,
	}
	for _, skip := range skippers {
		var m int
		m, err = skip(bs[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// ExceptionRecordMUS serializes ExceptionRecord values.
var ExceptionRecordMUS = exceptionRecordMUS{}

type exceptionRecordMUS struct{}

var _ mus.Serializer[ExceptionRecord] = ExceptionRecordMUS

func (exceptionRecordMUS) Marshal(v ExceptionRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.RunId, bs[n:])
	n += ord.String.Marshal(v.Filename, bs[n:])
	n += ord.String.Marshal(v.Path, bs[n:])
	n += varint.Int.Marshal(int(v.Stage), bs[n:])
	n += ord.String.Marshal(v.Message, bs[n:])
	n += varint.Uint64.Marshal(v.Seq, bs[n:])
	n += timeMUS{}.Marshal(v.RecordedAt, bs[n:])
	return n
}

func (exceptionRecordMUS) Unmarshal(bs []byte) (v ExceptionRecord, n int, err error) {
	var m int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return v, n, err
	}
	if v.RunId, m, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.Filename, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.Path, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	var stage int
	if stage, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	v.Stage = FailureStage(stage)
	if v.Message, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.Seq, m, err = varint.Uint64.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.RecordedAt, m, err = (timeMUS{}).Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	return v, n, nil
}

func (exceptionRecordMUS) Size(v ExceptionRecord) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.RunId)
	size += ord.String.Size(v.Filename)
	size += ord.String.Size(v.Path)
	size += varint.Int.Size(int(v.Stage))
	size += ord.String.Size(v.Message)
	size += varint.Uint64.Size(v.Seq)
	size += timeMUS{}.Size(v.RecordedAt)
	return size
}

func (exceptionRecordMUS) Skip(bs []byte) (n int, err error) {
	skippers := []func([]byte) (int, error){
		IDMUS.Skip,
		IDMUS.Skip,
		ord.String.Skip,
		ord.String.Skip,
		varint.Int.Skip,
		ord.String.Skip,
		varint.Uint64.Skip,
		timeMUS{}.Skip,
	}
	for _, skip := range skippers {
		var m int
		m, err = skip(bs[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
