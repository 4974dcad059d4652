package http

import (
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"booktracker/internal/websession"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server
// Error response. The actual error is logged but not exposed.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with a 400 error and returns (0, false) when the
// value is not a valid ID.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// --- HTML Form Helpers ---

// redirectWithMessage sends the browser back to page with a flash
// message in the query string.
func redirectWithMessage(c *gin.Context, page, message string) {
	c.Redirect(http.StatusSeeOther, page+"?msg="+template.URLQueryEscaper(message))
}

// redirectWithError sends the browser back to page with an error
// message in the query string.
func redirectWithError(c *gin.Context, page, message string) {
	c.Redirect(http.StatusSeeOther, page+"?error="+template.URLQueryEscaper(message))
}

// pageData merges per-page template data with the fields every page
// needs: the CSRF token field and any flash message from the query
// string.
func pageData(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	if token := websession.GetCSRFToken(c); token != "" {
		data["CSRFField"] = template.HTML(`<input type="hidden" name="gorilla.csrf.Token" value="` + token + `">`)
	} else {
		data["CSRFField"] = template.HTML("")
	}
	data["Flash"] = c.Query("msg")
	data["FlashError"] = c.Query("error")
	return data
}

// wantsJSON reports whether the client asked for a JSON response.
func wantsJSON(c *gin.Context) bool {
	return c.GetHeader("Accept") == "application/json"
}
