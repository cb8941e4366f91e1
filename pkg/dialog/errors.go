package dialog

import "errors"

// ErrTreeNotFound is returned by loaders and providers when a named tree
// does not exist in the content source.
var ErrTreeNotFound = errors.New("tree not found")
