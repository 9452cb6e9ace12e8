package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/julianstephens/habitup/internal/auth"
	"github.com/julianstephens/habitup/internal/models"
	"github.com/julianstephens/habitup/internal/storage"
)

type signupRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	Owner models.Owner `json:"owner"`
}

func (s *Server) signup(c *gin.Context) {
	var req signupRequest
	if err := s.bind(c, &req, false); err != nil {
		abort(c, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		abort(c, err)
		return
	}
	owner := models.Owner{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Role:         models.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.AddOwner(c.Request.Context(), owner); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			fail(c, http.StatusConflict, "an account with that email already exists")
			return
		}
		abort(c, err)
		return
	}

	token, err := s.issuer.Issue(owner)
	if err != nil {
		abort(c, err)
		return
	}
	ok(c, http.StatusCreated, "account created", tokenResponse{Token: token, Owner: owner})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := s.bind(c, &req, false); err != nil {
		abort(c, err)
		return
	}

	owner, err := s.store.GetOwnerByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, storage.ErrNotFound) {
		abort(c, auth.ErrInvalidCredentials)
		return
	}
	if err != nil {
		abort(c, err)
		return
	}
	if err := auth.VerifyPassword(owner.PasswordHash, req.Password); err != nil {
		abort(c, auth.ErrInvalidCredentials)
		return
	}

	token, err := s.issuer.Issue(owner)
	if err != nil {
		abort(c, err)
		return
	}
	ok(c, http.StatusOK, "", tokenResponse{Token: token, Owner: owner})
}

func (s *Server) me(c *gin.Context) {
	owner, err := s.store.GetOwner(c.Request.Context(), ownerID(c))
	if err != nil {
		abort(c, err)
		return
	}
	ok(c, http.StatusOK, "", owner)
}
