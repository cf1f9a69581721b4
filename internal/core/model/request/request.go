package request

import "encoding/json"

// CreateTodoRequest is the accepted payload for POST /api/todos/.
// Status is optional and defaults to "pending" in the service layer.
type CreateTodoRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Status      string  `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
}

// UpdateTodoRequest is the accepted payload for PUT /api/todos/:id. Every
// field is optional, and a key absent from the payload must leave the stored
// value untouched, so UnmarshalJSON records which keys were actually supplied.
// A nil pointer alone cannot tell "absent" apart from "explicitly null".
type UpdateTodoRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in_progress completed"`

	supplied map[string]bool
}

func (r *UpdateTodoRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateTodoRequest

	var fields plain

	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var keys map[string]json.RawMessage

	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	*r = UpdateTodoRequest(fields)
	r.supplied = make(map[string]bool, len(keys))

	for key := range keys {
		r.supplied[key] = true
	}

	return nil
}

// Has reports whether the given JSON key appeared in the payload, even with a
// null value.
func (r *UpdateTodoRequest) Has(key string) bool {
	return r.supplied[key]
}
