package delivery

import (
	"fmt"

	"carrierlink/internal/pkg/errs"
)

// PackageSize classifies a parcel for carriers browsing requests.
type PackageSize int

const (
	UnknownSize PackageSize = iota
	Small
	Medium
	Large
)

var packageSizeNames = map[PackageSize]string{
	Small:  "small",
	Medium: "medium",
	Large:  "large",
}

// ParsePackageSize converts the wire name of a size. field is reported in the
// validation error.
func ParsePackageSize(field, s string) (PackageSize, error) {
	for size, name := range packageSizeNames {
		if name == s {
			return size, nil
		}
	}
	return UnknownSize, errs.NewValueIsInvalidErrorWithCause(
		field,
		fmt.Errorf("%q is not one of small, medium, large", s),
	)
}

func (p PackageSize) String() string {
	if name, ok := packageSizeNames[p]; ok {
		return name
	}
	return "unknown"
}

func (p PackageSize) Validate() error {
	if _, ok := packageSizeNames[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("packageSize", fmt.Errorf("%d is not a valid package size", p))
	}
	return nil
}
