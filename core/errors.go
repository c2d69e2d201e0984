package core

import "errors"

var (
	ErrInvalidPage   = errors.New("boilerplate: invalid page")
	ErrInvalidConfig = errors.New("boilerplate: invalid config")
)

func IsInvalidPageError(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}
