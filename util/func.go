package util

import (
	"strings"
	"time"

	pr "go.mongodb.org/mongo-driver/bson/primitive"
)

// In slice
func In[T comparable](mem T, arr []T) bool {
	for i := range arr {
		if mem == arr[i] {
			return true
		}
	}
	return false
}

// expressions
func Exp[T any](isTrue bool, yes T, no T) T {
	if isTrue {
		return yes
	}
	return no
}

// go func for every duration
func GoJob(f func(), duration time.Duration, delay ...time.Duration) {
	go func() {
		// delay
		if len(delay) > 0 {
			time.Sleep(delay[0])
		}
		for {
			f()
			time.Sleep(duration)
		}
	}()
}

// ParseId returns the zero id for an empty or malformed hex string
func ParseId(hex string) pr.ObjectID {
	id, err := pr.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return pr.NilObjectID
	}
	return id
}

// SplitTags trims, lowercases and dedupes tags, keeping first-seen order
func SplitTags(tags []string) []string {
	res := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || In(t, res) {
			continue
		}
		res = append(res, t)
	}
	return res
}

// Words splits a search query into distinct lowercase words
func Words(q string) []string {
	return SplitTags(strings.Fields(q))
}
