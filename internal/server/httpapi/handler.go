package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/entrycounter/internal/common"
	"github.com/gin-gonic/gin"
)

const (
	addedMessage   = "Entry added successfully with random data."
	problemType    = "https://tools.ietf.org/html/rfc9110#section-15.6.1"
	problemTitle   = "An error occurred while processing your request."
	problemDetail  = "An error occurred while processing your request."
	problemContent = "application/problem+json"
)

type addEntryResponse struct {
	Message string `json:"message"`
	Data    string `json:"data"`
	Count   int64  `json:"count"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// Problem is an RFC 9457 problem details body.
type Problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *HTTPServer) addEntry(c *gin.Context) {
	ctx := c.Request.Context()

	s.logger.Info(ctx, "Handling request for '/' endpoint.")

	res, err := s.entries.Add(ctx)
	if err != nil {
		s.logger.Error(ctx, "An error occurred while handling the request.",
			"error", err.Error(), "sqlstate", common.SQLState(err))
		writeProblem(c, http.StatusInternalServerError)
		return
	}

	s.logger.Debug(ctx, "New entry added.", "id", res.Entry.ID, "count", res.Count)

	c.JSON(http.StatusOK, addEntryResponse{
		Message: addedMessage,
		Data:    res.Entry.Data,
		Count:   res.Count,
	})
}

func (s *HTTPServer) status(c *gin.Context) {
	s.logger.Info(c.Request.Context(), "Handling request for '/status' endpoint.")

	c.JSON(http.StatusOK, statusResponse{Status: common.StatusUp})
}

// writeProblem answers with a generic problem body; internal error details
// never reach the client.
func writeProblem(c *gin.Context, status int) {
	c.Header("Content-Type", problemContent)
	c.AbortWithStatusJSON(status, Problem{
		Type:   problemType,
		Title:  problemTitle,
		Status: status,
		Detail: problemDetail,
	})
}
