package util

import (
	"testing"
	"time"

	pr "go.mongodb.org/mongo-driver/bson/primitive"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestSplitTags(t *testing.T) {
	tags := SplitTags([]string{" Go ", "mongo", "GO", "", "  ", "Gin"})
	assert.DeepEqual(t, tags, []string{"go", "mongo", "gin"})

	assert.Check(t, is.Len(SplitTags(nil), 0))
	assert.Assert(t, SplitTags(nil) != nil)
}

func TestWords(t *testing.T) {
	assert.DeepEqual(t, Words("  Hello world  hello\tGo "), []string{"hello", "world", "go"})
	assert.Check(t, is.Len(Words(""), 0))
}

func TestParseId(t *testing.T) {
	id := pr.NewObjectID()
	assert.Equal(t, ParseId(id.Hex()), id)
	assert.Equal(t, ParseId(" "+id.Hex()+" "), id)
	assert.Equal(t, ParseId("nope"), pr.NilObjectID)
	assert.Equal(t, ParseId(""), pr.NilObjectID)
}

func TestInExp(t *testing.T) {
	assert.Check(t, In("b", []string{"a", "b"}))
	assert.Check(t, !In(3, []int{1, 2}))
	assert.Equal(t, Exp(true, 1, 2), 1)
	assert.Equal(t, Exp(false, "a", "b"), "b")
}

func TestGoJob(t *testing.T) {
	ran := make(chan struct{}, 4)
	GoJob(func() {
		select {
		case ran <- struct{}{}:
		default:
		}
	}, time.Millisecond)

	for i := 0; i < 2; i++ {
		select {
		case <-ran:
		case <-time.After(time.Second):
			t.Fatal("job did not run")
		}
	}
}
