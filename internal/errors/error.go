// Package errors provides the sentinel errors of the productos domain.
package errors

import "errors"

var ErrProductoNotFound = errors.New("producto not found")
