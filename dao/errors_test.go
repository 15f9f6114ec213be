package dao

import (
	"errors"
	"fmt"
	"testing"

	"github.com/qiniu/qmgo"
	"go.mongodb.org/mongo-driver/mongo"
	"gotest.tools/v3/assert"
)

func TestCheck(t *testing.T) {
	assert.NilError(t, check("op", nil, ErrNotFound))

	assert.Equal(t, check("op", qmgo.ErrNoSuchDocuments, ErrDraftNotFound), ErrDraftNotFound)
	assert.Equal(t, check("op", mongo.ErrNoDocuments, ErrCreate), ErrCreate)

	boom := errors.New("connection reset")
	err := check("read blog", boom, ErrNotFound)
	assert.Assert(t, IsStoreError(err))
	assert.ErrorIs(t, err, boom)
	assert.Error(t, err, "read blog: connection reset")
}

func TestIsStoreError(t *testing.T) {
	assert.Assert(t, !IsStoreError(ErrNotFound))
	assert.Assert(t, !IsStoreError(nil))

	wrapped := fmt.Errorf("publish: %w", &StoreError{Op: "insert blog", Err: errors.New("timeout")})
	assert.Assert(t, IsStoreError(wrapped))
}
