package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageHandler renders the public informational pages. They carry no
// data beyond the shared layout.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) Home(c *gin.Context) {
	message, category := takeFlash(c)
	c.HTML(http.StatusOK, "root/index.html", gin.H{
		"Title":         "About Me",
		"Message":       message,
		"FlashCategory": category,
	})
}

func (h *PageHandler) WorkWithMe(c *gin.Context) {
	c.HTML(http.StatusOK, "root/work_with_me.html", gin.H{
		"Title": "How to Work With Me",
	})
}

func (h *PageHandler) Insights(c *gin.Context) {
	c.HTML(http.StatusOK, "root/insights.html", gin.H{
		"Title": "Insights Discovery",
	})
}
