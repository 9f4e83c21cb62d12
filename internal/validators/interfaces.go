// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks submitted forms before they reach storage.
//
// Validation failures are reported per field as [FieldErrors], so that the
// page handlers can re-render a form with inline messages. Passing field
// names to Validate restricts the check to those fields.
package validators

import "context"

// Validator validates a form value. An unknown value type yields
// [ErrUnsupportedType], an unknown field name [ErrUnknownField].
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
