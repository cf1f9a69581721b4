package request_test

import (
	"encoding/json"
	"testing"

	. "github.com/onsi/gomega"

	"todoapi/internal/core/model/request"
)

func TestUpdateTodoRequestTracksSuppliedKeys(t *testing.T) {
	RegisterTestingT(t)

	var params request.UpdateTodoRequest

	err := json.Unmarshal([]byte(`{"title": "new title", "status": "completed"}`), &params)

	Expect(err).To(BeNil())
	Expect(params.Has("title")).To(BeTrue())
	Expect(params.Has("status")).To(BeTrue())
	Expect(params.Has("description")).To(BeFalse())
	Expect(*params.Title).To(Equal("new title"))
	Expect(*params.Status).To(Equal("completed"))
	Expect(params.Description).To(BeNil())
}

func TestUpdateTodoRequestNullIsSuppliedButNil(t *testing.T) {
	RegisterTestingT(t)

	var params request.UpdateTodoRequest

	err := json.Unmarshal([]byte(`{"description": null}`), &params)

	Expect(err).To(BeNil())
	Expect(params.Has("description")).To(BeTrue())
	Expect(params.Description).To(BeNil())
	Expect(params.Has("title")).To(BeFalse())
}

func TestUpdateTodoRequestEmptyBody(t *testing.T) {
	RegisterTestingT(t)

	var params request.UpdateTodoRequest

	err := json.Unmarshal([]byte(`{}`), &params)

	Expect(err).To(BeNil())
	Expect(params.Has("title")).To(BeFalse())
	Expect(params.Has("description")).To(BeFalse())
	Expect(params.Has("status")).To(BeFalse())
}
