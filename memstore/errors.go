// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package memstore

import "errors"

var errNotInitialized = errors.New("memstore: parameter singleton not yet initialized")
