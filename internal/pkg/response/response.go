package response

import "github.com/gin-gonic/gin"

// Error codes shared by every handler.
const (
	CodeConfigurationMissing = "CONFIGURATION_MISSING"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeValidation           = "VALIDATION_ERROR"
	CodeFileTooLarge         = "FILE_TOO_LARGE"
	CodeRemoteService        = "REMOTE_SERVICE_ERROR"
	CodePersistence          = "PERSISTENCE_ERROR"
	CodeConflict             = "CONFLICT"
	CodeInternal             = "INTERNAL_SERVER_ERROR"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// Abort writes the error envelope and stops the handler chain.
func Abort(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}
