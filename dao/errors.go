package dao

import (
	"errors"
	"fmt"

	"github.com/qiniu/qmgo"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrNotFoundOrForbidden = errors.New("not found or not the author")
	ErrDuplicateReport     = errors.New("already reported")
	ErrTargetNotFound      = errors.New("report target not found")
	ErrInvalidCommand      = errors.New("illegal command")
	ErrMissingParent       = errors.New("blogId or commentId missing")
	ErrCreate              = errors.New("parent not found, nothing created")
	ErrDraftNotFound       = errors.New("draft not found")
	ErrVoteUnchanged       = errors.New("vote unchanged")
)

// StoreError wraps a driver or network failure
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// check maps a qmgo result error: no match becomes miss, anything else a logged StoreError
func check(op string, err error, miss error) error {
	if err == nil {
		return nil
	}
	if qmgo.IsErrNoDocuments(err) || errors.Is(err, mongo.ErrNoDocuments) {
		return miss
	}
	log.Error().Err(err).Str("op", op).Msg("store error")
	return &StoreError{Op: op, Err: err}
}

// IsStoreError reports whether err came from the driver rather than a business rule
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
