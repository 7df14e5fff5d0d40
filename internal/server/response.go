package server

import "github.com/gin-gonic/gin"

const (
	msgURLRequired      = "GitHub URL is required"
	msgInvalidURL       = "Invalid GitHub URL format"
	msgUsernameRequired = "Username is required"
	msgInvalidUsername  = "Invalid GitHub username"
	msgUserNotFound     = "GitHub user not found"
	msgFetchFailed      = "Failed to fetch GitHub user data"
	msgTooManyRequests  = "Too many requests, please try again later"
)

// envelope is the body of every API response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, envelope{Success: false, Error: msg})
}
