package factory

import (
	fab "github.com/Goldziher/fabricator"
)

// NewTodo fabricates an instance of T with random field values, overridden by
// customData. Callers should always pin Status and Title, the random values
// would not pass validation.
func NewTodo[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	if len(customData) > 0 {
		return instance.Build(customData...)
	}

	return instance.Build()
}
