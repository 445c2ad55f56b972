package canvas

import "errors"

// ErrUnsupportedImage is returned by DecodeImage and LoadImage when the
// data is not in a registered image format.
var ErrUnsupportedImage = errors.New("canvas: unsupported image format")
