// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error types. ActionableError carries the
// failed operation, the resource involved, and concrete suggestions, so CLI
// output can tell the user what to do next instead of dumping a raw error
// chain.
package issue
