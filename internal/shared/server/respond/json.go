package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DataResponse is the success envelope for resume payloads.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Data writes a 200 OK response with payload under "data".
func Data(c *gin.Context, payload interface{}) {
	OK(c, DataResponse{Data: payload})
}
