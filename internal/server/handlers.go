package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/littlemath/internal/problem"
	"github.com/abhisek/littlemath/internal/quiz"
)

type categoryRequest struct {
	Category string `json:"category" binding:"required"`
}

type answerRequest struct {
	Option string `json:"option" binding:"required"`
}

func (s *Server) health(c *gin.Context) {
	if s.opts.DB != nil {
		if err := s.opts.DB.PingContext(c.Request.Context()); err != nil {
			s.logger.Warn("health check failed", zap.Error(err))
			errorResponse(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	success(c, gin.H{"status": "ok"})
}

func (s *Server) categories(c *gin.Context) {
	success(c, categoryViews())
}

func (s *Server) state(c *gin.Context) {
	success(c, newStateView(s.ctrl.State()))
}

func (s *Server) selectCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if _, ok := problem.LookupCategory(req.Category); !ok {
		badRequest(c, "unknown category: "+req.Category)
		return
	}
	s.dispatch(quiz.SelectCategory{ID: req.Category})
	s.state(c)
}

func (s *Server) submitAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	s.dispatch(quiz.SubmitAnswer{Option: req.Option})
	s.state(c)
}

// intent returns a handler for a body-less intent.
func (s *Server) intent(in quiz.Intent) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.dispatch(in)
		s.state(c)
	}
}
