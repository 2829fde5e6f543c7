package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/memberclient/internal/client/models"
	"github.com/dmitrijs2005/memberclient/internal/common"
	"github.com/dmitrijs2005/memberclient/internal/server/users"
	"github.com/go-chi/chi/v5"
)

type loginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(r, &req) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := s.users.Login(r.Context(), req.UserID, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.logger.Info(r.Context(), "Logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, models.Session{
		Token:    token,
		UserID:   user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Phone:    user.Phone,
	})
}

type registerRequest struct {
	FullName string `json:"fullname"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Referrer string `json:"referrer"`
	Password string `json:"password"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decode(r, &req) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FullName == "" || req.Phone == "" || req.Email == "" || req.Referrer == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	user, err := s.users.Register(r.Context(), users.RegisterInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Referrer: req.Referrer,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, users.ErrReferrerNotFound) {
			writeError(w, http.StatusBadRequest, "Referrer not found")
			return
		}
		s.logger.Error(r.Context(), "registration failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.ledger.Open(user.ID, s.seedDeposit)
	s.logger.Info(r.Context(), "Registered", "user_id", user.ID, "otp", user.OTP)
	writeMessage(w, http.StatusCreated, "Registration successful", map[string]string{"userId": user.ID})
}

type verifyOTPRequest struct {
	UserID string `json:"userId"`
	OTP    string `json:"otp"`
}

func (s *Server) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if !decode(r, &req) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.users.VerifyOTP(r.Context(), req.UserID, strings.TrimSpace(req.OTP)); err != nil {
		if errors.Is(err, users.ErrInvalidOTP) || errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusBadRequest, "Invalid OTP")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeMessage(w, http.StatusOK, "OTP verified", nil)
}

func (s *Server) referrerName(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Get(r.Context(), common.NormalizeID(chi.URLParam(r, "id")))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Referrer not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeData(w, map[string]string{"fullName": user.FullName})
}
