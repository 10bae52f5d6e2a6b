// Error taxonomy shared by the editor and the transform service
package imgerr

import "errors"

var (
	// ErrDecode reports malformed or unreadable image data.
	ErrDecode = errors.New("decode error")
	// ErrInvalidInput reports an empty buffer or malformed parameters.
	ErrInvalidInput = errors.New("invalid input")
	// ErrPathValidation reports an unsafe save path.
	ErrPathValidation = errors.New("invalid path")
	// ErrSegmentation reports that background removal cannot proceed.
	ErrSegmentation = errors.New("segmentation error")
	// ErrEncode reports a failure producing output bytes.
	ErrEncode = errors.New("encode error")
	// ErrIO reports a filesystem write failure.
	ErrIO = errors.New("io error")
)

// IsClientError reports whether err is caused by the caller's input rather than
// by the host environment.
func IsClientError(err error) bool {
	return errors.Is(err, ErrDecode) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrPathValidation) ||
		errors.Is(err, ErrSegmentation) ||
		errors.Is(err, ErrEncode)
}
