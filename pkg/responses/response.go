package responses

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
	pkgvalidator "github.com/DhavalSuthar-24/leaguehub/pkg/validator"
)

// jsonErrorResponse is the body of every error response.
type jsonErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// pagination holds pagination details.
type pagination struct {
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
	PageSize     int   `json:"pageSize"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
	NextPage     *int  `json:"nextPage,omitempty"`
	PreviousPage *int  `json:"previousPage,omitempty"`
}

// ErrorResponse sends an error body whose "error" field is the status text.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, jsonErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// FromError renders err with the status its kind maps to. Storage failures
// are logged and their cause is never sent to the client.
func FromError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	status := kind.HTTPStatus()
	if status >= http.StatusInternalServerError {
		log.Ctx(c.Request.Context()).Error().Err(err).Str("kind", string(kind)).Msg("Request failed")
	}
	c.AbortWithStatusJSON(status, jsonErrorResponse{
		Error:   string(kind),
		Message: apperror.Message(err),
	})
}

// ValidationErrorResponse sends a 400 for errors from c.ShouldBindJSON()
// or similar, listing the offending fields when the validator produced them.
func ValidationErrorResponse(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		c.AbortWithStatusJSON(http.StatusBadRequest, jsonErrorResponse{
			Error:   string(apperror.KindValidation),
			Message: "Validation failed. Please check your input.",
			Fields:  pkgvalidator.ParseError(err),
		})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, jsonErrorResponse{
		Error:   string(apperror.KindValidation),
		Message: "Invalid request payload: " + err.Error(),
	})
}

// SuccessResponse sends {"success": true} merged with data.
func SuccessResponse(c *gin.Context, statusCode int, data gin.H) {
	body := gin.H{"success": true}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// PaginatedResponse sends a list of items with pagination details.
func PaginatedResponse(c *gin.Context, statusCode int, key string, items any, currentPage, pageSize int, totalItems int64) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(pageSize)))
	}

	hasNextPage := currentPage < totalPages
	hasPrevPage := currentPage > 1 && currentPage <= totalPages

	var nextPageNum *int
	if hasNextPage {
		val := currentPage + 1
		nextPageNum = &val
	}

	var prevPageNum *int
	if hasPrevPage {
		val := currentPage - 1
		prevPageNum = &val
	}

	c.JSON(statusCode, gin.H{
		"success": true,
		key:       items,
		"pagination": pagination{
			TotalItems:   totalItems,
			TotalPages:   totalPages,
			CurrentPage:  currentPage,
			PageSize:     pageSize,
			HasNextPage:  hasNextPage,
			HasPrevPage:  hasPrevPage,
			NextPage:     nextPageNum,
			PreviousPage: prevPageNum,
		},
	})
}

// MethodNotAllowed answers requests whose route exists under another method.
func MethodNotAllowed(c *gin.Context) {
	ErrorResponse(c, http.StatusMethodNotAllowed, "Method "+c.Request.Method+" is not allowed on "+c.Request.URL.Path)
}
