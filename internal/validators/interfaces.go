// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks cars, actions and action patches before they
// reach a garage.
//
// Every rule violation is reported as one of the Err* sentinels so callers
// can tell the user which field to fix. Several violations are joined.
package validators

import "context"

// Validator checks a value. With field names, only those fields are checked.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
