package dao

import (
	"context"
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

func TestSagaAbort(t *testing.T) {
	var order []string
	step := func(name string, err error) func(context.Context) error {
		return func(ctx context.Context) error {
			assert.NilError(t, ctx.Err())
			order = append(order, name)
			return err
		}
	}

	s := newSaga("test")
	s.done("create", step("create", nil))
	s.done("link", step("link", errors.New("unlink failed")))
	s.done("list", step("list", nil))

	cause := errors.New("delete draft")
	assert.Equal(t, s.abort(cause), cause)
	assert.DeepEqual(t, order, []string{"list", "link", "create"})
}

func TestSagaAbortEmpty(t *testing.T) {
	cause := errors.New("first step")
	assert.Equal(t, newSaga("empty").abort(cause), cause)
}
