package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created answers 201 with the new resource.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent answers 204 for mutations that return nothing.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Accepted answers 202 when the work is queued rather than done.
func Accepted(c *gin.Context) {
	c.Status(http.StatusAccepted)
}

// List wraps items as {data, total}. A nil slice is sent as [].
func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}
