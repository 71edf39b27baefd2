package vrp

import "errors"

var (
	// ErrMissingCoordinate is returned when a node referenced by the
	// instance has no entry in the coordinate section.
	ErrMissingCoordinate = errors.New("vrp: node has no coordinate")

	// ErrMalformedSection is returned when a section line cannot be parsed.
	ErrMalformedSection = errors.New("vrp: malformed section")

	// ErrUnsupportedDistanceType is returned for EDGE_WEIGHT_TYPE values
	// other than EUC_2D and CEIL_2D.
	ErrUnsupportedDistanceType = errors.New("vrp: unsupported edge weight type")
)
