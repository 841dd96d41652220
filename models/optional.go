// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
)

// ErrNullNotAllowed is returned when a JSON payload sets an optional field
// to an explicit null.
var ErrNullNotAllowed = errors.New("null is not allowed for optional fields")

// Optional is a value with an explicit presence flag.
//
// Set is true only when the field was present in the decoded JSON document
// (or set via [Some]); absent fields keep the zero Optional.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON marks the field as present and decodes its value.
// An explicit null is rejected with [ErrNullNotAllowed].
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return ErrNullNotAllowed
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	o.Value = v
	o.Set = true
	return nil
}

// MarshalJSON encodes the value, or null when the field is not set.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
