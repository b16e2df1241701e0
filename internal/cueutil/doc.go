// SPDX-License-Identifier: MPL-2.0

// Package cueutil holds shared helpers for working with CUE files: size
// guarding before parsing and formatting CUE validation errors with JSON-path
// prefixes for readable messages.
package cueutil
