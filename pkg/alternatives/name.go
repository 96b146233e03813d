package alternatives

import (
	"strings"

	"github.com/fthomys/update-alternatives/pkg/errors"
)

// ValidateName checks that name can serve as a database file name and a
// link name. Names become single path components in both directories, and
// dot-prefixed entries are reserved for temp files.
func ValidateName(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "name must not be empty")
	}
	if strings.HasPrefix(name, ".") {
		return errors.Newf(errors.ErrInvalidInput, "name %q must not start with a dot", name)
	}
	if strings.ContainsRune(name, '/') {
		return errors.Newf(errors.ErrInvalidInput, "name %q must not contain a path separator", name)
	}
	return nil
}
