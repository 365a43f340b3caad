package normalizer

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawRecord is one decoded backend record before normalization.
type RawRecord map[string]interface{}

// PayloadKind tags the shape of a decoded backend response.
type PayloadKind int

const (
	KindOther PayloadKind = iota
	KindList
	KindObject
)

type member struct {
	key   string
	value interface{}
}

// Payload is a decoded backend response: a list, an object envelope
// (members kept in the order the backend sent them) or any other value.
type Payload struct {
	kind    PayloadKind
	list    []interface{}
	members []member
	other   interface{}
}

// ListPayload wraps already-decoded records, mainly for callers that build
// payloads in memory.
func ListPayload(items []interface{}) Payload {
	return Payload{kind: KindList, list: items}
}

// ParsePayload decodes raw backend bytes. Empty input decodes to an empty
// KindOther payload. Numbers are kept as json.Number.
func ParsePayload(data []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Payload{kind: KindOther}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	switch trimmed[0] {
	case '[':
		var list []interface{}
		if err := dec.Decode(&list); err != nil {
			return Payload{}, fmt.Errorf("decode list payload: %w", err)
		}
		return Payload{kind: KindList, list: list}, nil
	case '{':
		members, err := decodeMembers(dec)
		if err != nil {
			return Payload{}, fmt.Errorf("decode object payload: %w", err)
		}
		return Payload{kind: KindObject, members: members}, nil
	default:
		var other interface{}
		if err := dec.Decode(&other); err != nil {
			return Payload{}, fmt.Errorf("decode payload: %w", err)
		}
		return Payload{kind: KindOther, other: other}, nil
	}
}

func decodeMembers(dec *json.Decoder) ([]member, error) {
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var members []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		members = append(members, member{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return members, nil
}

// Object returns the payload as a record when it is an object envelope.
func (p Payload) Object() (RawRecord, bool) {
	if p.kind != KindObject {
		return nil, false
	}
	rec := make(RawRecord, len(p.members))
	for _, m := range p.members {
		rec[m.key] = m.value
	}
	return rec, true
}

// ExtractRecords finds the record list in a response: a list is used as is,
// an object yields its first list-valued member, anything else yields nothing.
// Elements that are not objects are skipped rather than failing the load, which
// departs from the browser panel where a null element aborted it.
func ExtractRecords(p Payload) []RawRecord {
	var items []interface{}
	switch p.kind {
	case KindList:
		items = p.list
	case KindObject:
		for _, m := range p.members {
			if list, ok := m.value.([]interface{}); ok {
				items = list
				break
			}
		}
	}

	records := make([]RawRecord, 0, len(items))
	for _, item := range items {
		switch rec := item.(type) {
		case map[string]interface{}:
			records = append(records, RawRecord(rec))
		case RawRecord:
			records = append(records, rec)
		}
	}
	return records
}

// FirstRecord returns the single record a lookup endpoint answered with: the
// object itself, or the first record of a list.
func FirstRecord(p Payload) (RawRecord, bool) {
	if rec, ok := p.Object(); ok {
		return rec, true
	}
	records := ExtractRecords(p)
	if len(records) == 0 {
		return nil, false
	}
	return records[0], true
}
