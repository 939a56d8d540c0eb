package pageseg

import (
	"errors"
)

// ErrConfig is returned for unusable configuration such as missing detector
// resources or inconsistent parameters.  It aborts a run before any page is
// processed.
var ErrConfig = errors.New("configuration error")
