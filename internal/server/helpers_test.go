package server

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanizeParam(t *testing.T) {
	assert.Equal(t, "id", humanizeParam("id"))
	assert.Equal(t, "comment id", humanizeParam("commentId"))
	assert.Equal(t, "user id", humanizeParam("userId"))
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var limit, offset int
	app.Get("/", func(c *fiber.Ctx) error {
		limit, offset = parsePagination(c)
		return c.SendStatus(fiber.StatusOK)
	})

	cases := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", defaultPageSize, 0},
		{"?limit=5&offset=10", 5, 10},
		{"?limit=0", defaultPageSize, 0},
		{"?limit=-3&offset=-1", defaultPageSize, 0},
		{"?limit=10000", maxPageSize, 0},
		{"?limit=abc", defaultPageSize, 0},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/"+tc.query, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.wantLimit, limit)
			assert.Equal(t, tc.wantOffset, offset)
		})
	}
}
