package service

import "errors"

// ErrUnsortedPositions indicates positions that are not in ascending order.
var ErrUnsortedPositions = errors.New("positions must be in ascending order")
