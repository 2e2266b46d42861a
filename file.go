package carrotpng

import (
	"os"

	"github.com/pkg/errors"
)

// DecodeFile reads the entire file at path into memory and decodes it, a
// thin convenience on top of Decode matching the "whole buffer in memory,
// no streaming" contract this package keeps everywhere else.
func DecodeFile(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return Decode(data)
}
