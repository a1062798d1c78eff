package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestWrapBarePayloads(t *testing.T) {
	wrapped := Wrap([]int{1, 2, 3})
	m, ok := wrapped.(fiber.Map)
	assert.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, m["results"])

	wrapped = Wrap("hello")
	m = wrapped.(fiber.Map)
	assert.Equal(t, "hello", m["results"])

	// A map without an envelope key still wraps.
	wrapped = Wrap(fiber.Map{"token": "abc"})
	m = wrapped.(fiber.Map)
	assert.Equal(t, fiber.Map{"token": "abc"}, m["results"])
}

func TestWrapPassesEnvelopedPayloadsThrough(t *testing.T) {
	errPayload := fiber.Map{"errors": fiber.Map{"code": "ERR_X", "message": "boom"}}
	assert.Equal(t, errPayload, Wrap(errPayload))

	metaPayload := map[string]interface{}{"metadata": map[string]string{"code": "OK_DONE"}}
	assert.Equal(t, metaPayload, Wrap(metaPayload))

	resultsPayload := fiber.Map{"results": []string{"a"}}
	assert.Equal(t, resultsPayload, Wrap(resultsPayload))
}
