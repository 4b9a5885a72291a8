package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the standard error envelope. Success payloads carry extra
// top-level fields (registrationId, data, count, ...) and are built per
// handler via OK/Created.
type Body struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// OK sends a 200 JSON response with success:true merged into payload.
func OK(c *gin.Context, payload gin.H) {
	send(c, http.StatusOK, payload)
}

// Created sends a 201 JSON response with success:true merged into payload.
func Created(c *gin.Context, payload gin.H) {
	send(c, http.StatusCreated, payload)
}

func send(c *gin.Context, status int, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["success"] = true
	c.JSON(status, payload)
}

// BadRequest sends 400 with a message.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Body{Success: false, Message: msg})
}

// Unauthorized sends 401.
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, Body{Success: false, Message: msg})
}

// NotFound sends 404.
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Body{Success: false, Message: msg})
}

// MethodNotAllowed sends 405.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, Body{Success: false, Message: "Method not allowed"})
}

// Internal sends 500.
func Internal(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, Body{Success: false, Message: msg})
}

// ServiceUnavailable sends 503.
func ServiceUnavailable(c *gin.Context, msg string) {
	c.JSON(http.StatusServiceUnavailable, Body{Success: false, Message: msg})
}
