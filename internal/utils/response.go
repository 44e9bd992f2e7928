package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movie-reviews-backend/internal/types"
)

// Every handler funnels its outcome through this formatter so the wire
// contract stays in one place: 200 {"data": ...}, 4xx {"Message": ...} with a
// user-safe explanation, 500 {"error": ...} with the raw fault.

func SendData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func SendMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"Message": message})
}

func SendValidationError(c *gin.Context, message string) {
	SendMessage(c, http.StatusBadRequest, message)
}

func SendUnauthorized(c *gin.Context) {
	SendMessage(c, http.StatusUnauthorized, "Unauthorized")
}

func SendNotFound(c *gin.Context, message string) {
	SendMessage(c, http.StatusNotFound, message)
}

func SendFault(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// SendError maps an error from the service or store layer onto the contract.
func SendError(c *gin.Context, err error) {
	switch {
	case types.IsValidation(err):
		SendValidationError(c, err.Error())
	case types.IsAuthorization(err):
		SendUnauthorized(c)
	case types.IsNotFound(err):
		SendNotFound(c, err.Error())
	default:
		SendFault(c, err)
	}
}
