// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNothingToServe means NewServer got no HTTP handler or no listen address.
var errNothingToServe = errors.New("server: no http handler or listen address configured")
