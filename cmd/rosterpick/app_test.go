package main

import (
	"testing"

	"github.com/ruminaider/rosterpick/internal/catalog"
	"github.com/stretchr/testify/assert"
)

func TestSuggester(t *testing.T) {
	pool := catalog.Default().Users
	suggest := suggester[catalog.User]("name", "email")

	got, ok := suggest("Grce Hopper", pool)
	assert.True(t, ok)
	assert.Equal(t, "Grace Hopper", got)

	_, ok = suggest("zzzzzzzzzz", pool)
	assert.False(t, ok)

	_, ok = suggest("Grace", nil)
	assert.False(t, ok)
}
