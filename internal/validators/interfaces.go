// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user input before it reaches the service layer.
// Each validator knows one input type and reports the first rule it breaks
// as an error wrapping one of the package sentinels.
package validators

import "context"

// Validator checks value. When fields are given, only those fields are
// checked, and a name the validator does not know is an error.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
