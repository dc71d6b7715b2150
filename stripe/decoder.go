package stripe

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/kbukum/stripefdw/errors"
	"github.com/kbukum/stripefdw/fdw"
)

// Decode turns a response body for obj into rows, one per record of the
// object's array, in response order. Any shape mismatch fails the whole
// body with MALFORMED_RESPONSE naming the offending path; no partial rows
// are returned.
func Decode(obj ObjectType, body []byte) ([]fdw.Row, error) {
	schema, ok := schemas[obj]
	if !ok {
		return nil, errors.UnsupportedObject(string(obj))
	}

	root, err := parseObject(body)
	if err != nil {
		return nil, errors.MalformedResponse(string(obj), "", err)
	}

	raw, ok := root[schema.array]
	if !ok {
		return nil, errors.MalformedResponse(string(obj), schema.array, errMissing)
	}
	records, ok := raw.([]any)
	if !ok {
		return nil, errors.MalformedResponse(string(obj), schema.array, typeError("array", raw))
	}

	rows := make([]fdw.Row, 0, len(records))
	for i, rec := range records {
		path := fmt.Sprintf("%s[%d]", schema.array, i)
		fields, ok := rec.(map[string]any)
		if !ok {
			return nil, errors.MalformedResponse(string(obj), path, typeError("object", rec))
		}

		var row fdw.Row
		for _, col := range schema.columns {
			cell, err := decodeCell(col.Kind, fields, col.Name)
			if err != nil {
				return nil, errors.MalformedResponse(string(obj), path+"."+col.Name, err)
			}
			row.Push(col.Name, cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DecodeNamed validates name as an object type and decodes body for it.
// It is the entry point for bodies fetched before the name was checked.
func DecodeNamed(name string, body []byte) ([]fdw.Row, error) {
	obj, err := ParseObjectType(name)
	if err != nil {
		return nil, err
	}
	return Decode(obj, body)
}

var errMissing = stderrors.New("field is missing")

// parseObject decodes a single top-level JSON object, keeping numbers
// exact.
func parseObject(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, stderrors.New("invalid JSON: trailing data after top-level value")
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return nil, typeError("object", root)
	}
	return obj, nil
}

func decodeCell(kind fdw.Kind, fields map[string]any, name string) (*fdw.Cell, error) {
	raw, ok := fields[name]
	if !ok {
		return nil, errMissing
	}

	switch kind {
	case fdw.KindInt64:
		num, ok := raw.(json.Number)
		if !ok {
			return nil, typeError("integer", raw)
		}
		n, err := num.Int64()
		if err != nil {
			return nil, fmt.Errorf("expected integer, got %s", num)
		}
		return fdw.Int64(n), nil
	case fdw.KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, typeError("string", raw)
		}
		return fdw.String(s), nil
	default:
		return nil, fmt.Errorf("no decoder for %s columns", kind)
	}
}

func typeError(want string, got any) error {
	return fmt.Errorf("expected %s, got %s", want, jsonType(got))
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
