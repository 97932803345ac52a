package sensordash

import "errors"

var (
	ErrInvalidGenerator = errors.New("invalid generator options")
	ErrInvalidDataset   = errors.New("invalid dataset")
	ErrUnknownSeries    = errors.New("unknown series")
	ErrUnknownPanel     = errors.New("unknown panel")
)
