package jsondoc

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrEmpty is returned when the body holds no JSON value at all.
var ErrEmpty = errors.New("jsondoc: empty document")

var (
	errUnexpected = errors.New("jsondoc: unexpected token")
	errTrailing   = errors.New("jsondoc: trailing data after JSON value")
)

// Parse decodes a JSON document keeping object member order.
func Parse(data []byte) (Value, error) {
	iter := jsoniter.ParseBytes(api, data)
	if iter.WhatIsNext() == jsoniter.InvalidValue {
		if errors.Is(iter.Error, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, errors.New("jsondoc: document does not start with a JSON value")
	}
	d := decoder{iter: iter}
	v := d.value()
	if d.err != nil {
		return nil, d.err
	}
	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return nil, fmt.Errorf("jsondoc: %w", iter.Error)
	}
	// Only whitespace may follow the document.
	if iter.WhatIsNext() != jsoniter.InvalidValue || !errors.Is(iter.Error, io.EOF) {
		return nil, errTrailing
	}
	return v, nil
}

type decoder struct {
	iter *jsoniter.Iterator
	err  error
}

func (d *decoder) ok() bool {
	return d.err == nil && (d.iter.Error == nil || errors.Is(d.iter.Error, io.EOF))
}

func (d *decoder) value() Value {
	switch d.iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		obj := Object{}
		d.iter.ReadObjectCB(func(_ *jsoniter.Iterator, key string) bool {
			obj = append(obj, Member{Key: key, Value: d.value()})
			return d.ok()
		})
		return obj
	case jsoniter.ArrayValue:
		arr := []Value{}
		d.iter.ReadArrayCB(func(_ *jsoniter.Iterator) bool {
			arr = append(arr, d.value())
			return d.ok()
		})
		return arr
	case jsoniter.StringValue:
		return d.iter.ReadString()
	case jsoniter.NumberValue:
		return d.iter.ReadNumber()
	case jsoniter.BoolValue:
		return d.iter.ReadBool()
	case jsoniter.NilValue:
		d.iter.ReadNil()
		return nil
	default:
		if d.err == nil {
			d.err = errUnexpected
		}
		return nil
	}
}
