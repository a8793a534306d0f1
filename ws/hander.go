package ws

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleCurriculumWebSocket streams load progress for one subject code.
func HandleCurriculumWebSocket(c *gin.Context) {
	subjectCode := c.Param("code")
	if subjectCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing subject code"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	H.Register(subjectCode, conn)
}

// HandleGlobalWebSocket streams curriculum change notifications.
func HandleGlobalWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	H.RegisterGlobal(conn)
}
