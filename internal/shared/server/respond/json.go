package respond

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// Created writes a 201 Created JSON response.
func Created(c *gin.Context, payload any) {
	JSON(c, http.StatusCreated, payload)
}

// Text renders a plain-text body with write. The body is buffered so a
// rendering failure still yields a proper 500 envelope instead of a
// truncated 200.
func Text(c *gin.Context, write func(io.Writer) error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		Error(c, http.StatusInternalServerError, "internal", "failed to render response", nil)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}
