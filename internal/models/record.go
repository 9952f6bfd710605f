package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Kind tags the scalar carried by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
)

// ErrNotScalar is returned when a JSON object or array is decoded into a Value.
var ErrNotScalar = errors.New("record values must be string, number, boolean or null")

// Value is a single scalar field of a detection record.
// The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  json.Number
	b    bool
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns a number value holding i.
func Int(i int64) Value { return Value{kind: KindNumber, num: json.Number(strconv.FormatInt(i, 10))} }

// Float returns a number value holding f in its shortest decimal form.
func Float(f float64) Value {
	return Value{kind: KindNumber, num: json.Number(strconv.FormatFloat(f, 'g', -1, 64))}
}

// Number returns a number value from its decimal text, kept verbatim on the wire.
func Number(n json.Number) Value { return Value{kind: KindNumber, num: n} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// Interface returns the Go value: nil, string, json.Number or bool.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	default:
		return nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrNotScalar
	}

	switch data[0] {
	case 'n':
		*v = Null()
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Bool(b)
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
		return nil
	case '{', '[':
		return ErrNotScalar
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return fmt.Errorf("invalid number %q: %w", data, err)
	}
	*v = Number(n)
	return nil
}

// Record is one detection event: field name to scalar value.
// No schema is enforced; validation belongs to whoever produced it.
type Record map[string]Value

// ErrNullRecord is returned when a record itself is JSON null.
var ErrNullRecord = errors.New("records must be JSON objects, not null")

// DecodeRecords accepts either a JSON array of records or a single record object.
func DecodeRecords(data []byte) ([]Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty body")
	}

	if data[0] == '{' {
		var r Record
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, err
		}
		return []Record{r}, nil
	}

	var rs []Record
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, err
	}
	if rs == nil {
		return nil, ErrNullRecord
	}
	for i, r := range rs {
		if r == nil {
			return nil, fmt.Errorf("record %d: %w", i, ErrNullRecord)
		}
	}
	return rs, nil
}

// SubmissionResponse is returned by POST /detections.
type SubmissionResponse struct {
	SubmissionID string `json:"submission_id"`
	Events       int    `json:"events"`
	StatusCode   int    `json:"status_code,omitempty"`
	Error        string `json:"error,omitempty"`
}

// SubmissionSummary is returned by GET /submissions.
type SubmissionSummary struct {
	Source    string `json:"source"`
	Succeeded int64  `json:"succeeded"`
	Failed    int64  `json:"failed"`
	Events    int64  `json:"events"`
}
