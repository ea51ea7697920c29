package api

import (
	"net/http"
	"strconv"

	"github.com/TendTo/MemeBot/src/shared/meme"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// votes reports both counters of a card. Cards in the review channel report
// moderator votes, anything else the community ones.
func (s *Server) votes(c *gin.Context) {
	channel, err := strconv.ParseInt(c.Param("channel"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad channel id"})
		return
	}
	cardID, err := strconv.ParseInt(c.Param("card"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad card id"})
		return
	}
	card := meme.CardRef{CardID: cardID, ChatID: channel}

	positive := meme.DecisionUp
	if channel == s.reviewChannel {
		positive = meme.DecisionApprove
	}

	out := gin.H{"card_id": c.Param("card"), "chat_id": c.Param("channel")}
	for _, d := range []meme.Decision{positive, positive.Opposite()} {
		n, err := s.backend.Tally(c.Request.Context(), card, d)
		if err != nil {
			s.internalError(c, "tally", err)
			return
		}
		out[d.String()] = n
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) pendingCount(c *gin.Context) {
	n, err := s.backend.PendingCount(c.Request.Context())
	if err != nil {
		s.internalError(c, "pending count", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": n})
}

func (s *Server) ban(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	userID, err := strconv.ParseInt(req.UserID, 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad user id"})
		return
	}
	if err := s.backend.Ban(c.Request.Context(), userID); err != nil {
		s.internalError(c, "ban", err)
		return
	}
	s.log.Info("user banned via api", zap.String("by", c.GetString(subjectKey)), zap.Int64("user", userID))
	c.Status(http.StatusNoContent)
}

func (s *Server) unban(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad user id"})
		return
	}
	was, err := s.backend.Unban(c.Request.Context(), userID)
	if err != nil {
		s.internalError(c, "unban", err)
		return
	}
	if !was {
		c.JSON(http.StatusNotFound, gin.H{"err": "user is not banned"})
		return
	}
	s.log.Info("user unbanned via api", zap.String("by", c.GetString(subjectKey)), zap.Int64("user", userID))
	c.Status(http.StatusNoContent)
}

func (s *Server) internalError(c *gin.Context, op string, err error) {
	s.log.Error(op+" failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"err": "internal error"})
}
