package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edubot/edubot/internal/chat"
	"github.com/edubot/edubot/internal/history"
	"github.com/edubot/edubot/internal/locale"
	"github.com/edubot/edubot/internal/store"
)

type chatRequest struct {
	Message   string `json:"message"`
	Language  string `json:"language"`
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, classify(chat.ErrInvalidRequest, locale.English))
		return
	}
	lang := locale.Parse(req.Language)

	userID := req.UserID
	if id := c.GetString(ctxUserID); id != "" {
		userID = id
	}

	reply, err := s.deps.Chat.Handle(c.Request.Context(), chat.Request{
		SessionID: req.SessionID,
		UserID:    userID,
		Message:   req.Message,
		Language:  lang,
	})
	if err != nil {
		respondError(c, classify(err, lang))
		return
	}
	c.JSON(http.StatusOK, chatResponse{Reply: reply})
}

type saveMessageRequest struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	Message   struct {
		Text string `json:"text"`
		Role string `json:"role"`
	} `json:"message"`
}

type sessionResponse struct {
	Success bool           `json:"success"`
	Session *store.Session `json:"session,omitempty"`
}

func (s *Server) saveMessage(c *gin.Context) {
	var req saveMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, classify(history.ErrInvalidInput, locale.English))
		return
	}
	userID := req.UserID
	if id := c.GetString(ctxUserID); id != "" {
		userID = id
	}
	sess, err := s.deps.History.SaveMessage(c.Request.Context(), history.SaveInput{
		SessionID: req.SessionID,
		UserID:    userID,
		Role:      store.Role(req.Message.Role),
		Text:      req.Message.Text,
	})
	if err != nil {
		respondError(c, classify(err, locale.English))
		return
	}
	c.JSON(http.StatusOK, sessionResponse{Success: true, Session: sess})
}

func (s *Server) listHistory(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		userID = c.GetString(ctxUserID)
	}
	sessions, err := s.deps.History.List(c.Request.Context(), c.Query("sessionId"), userID)
	if err != nil {
		respondError(c, classify(err, locale.English))
		return
	}
	if sessions == nil {
		sessions = []*store.Session{}
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (s *Server) deleteHistory(c *gin.Context) {
	if err := s.deps.History.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, classify(err, locale.English))
		return
	}
	c.JSON(http.StatusOK, sessionResponse{Success: true})
}

func (s *Server) renameHistory(c *gin.Context) {
	var req struct {
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, classify(history.ErrInvalidInput, locale.English))
		return
	}
	sess, err := s.deps.History.Rename(c.Request.Context(), c.Param("id"), req.Title)
	if err != nil {
		respondError(c, classify(err, locale.English))
		return
	}
	c.JSON(http.StatusOK, sessionResponse{Success: true, Session: sess})
}

func (s *Server) editMessage(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, classify(history.ErrInvalidInput, locale.English))
		return
	}
	sess, err := s.deps.History.EditMessage(c.Request.Context(), c.Param("id"), c.Param("messageId"), req.Text)
	if err != nil {
		respondError(c, classify(err, locale.English))
		return
	}
	c.JSON(http.StatusOK, sessionResponse{Success: true, Session: sess})
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "Invalid input"})
		return
	}
	if _, err := s.deps.Auth.Register(c.Request.Context(), req.Username, req.Password, req.Email); err != nil {
		respondError(c, classify(err, locale.English))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully."})
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "Invalid input"})
		return
	}
	login := req.Username
	if login == "" {
		login = req.Email
	}
	token, u, err := s.deps.Auth.Login(c.Request.Context(), login, req.Password)
	if err != nil {
		respondError(c, classify(err, locale.English))
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "username": u.Username})
}
