package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is the root of every "record does not exist" error returned by the repositories.
var ErrNotFound = errors.New("not found")

var (
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrProductNotFound  = fmt.Errorf("product %w", ErrNotFound)
)
