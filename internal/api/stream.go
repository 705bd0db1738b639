package api

import (
	"io"

	"github.com/gin-gonic/gin"
)

// streamUpdates writes a server-sent-event stream of list snapshots until
// the source channels close. The source watch is bound to the request
// context, so a client disconnect tears the Firestore listener down.
func streamUpdates[T any](c *gin.Context, updates <-chan []T, errs <-chan error) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case update, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("update", update)
			return true
		case err, ok := <-errs:
			if ok && err != nil {
				c.SSEvent("error", gin.H{"error": err.Error()})
			}
			return false
		}
	})
}
