// Package services contains the application services of the member client.
// This file defines the authentication service: login, registration with
// referral lookup and OTP verification. All calls go to public endpoints.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"github.com/dmitrijs2005/memberclient/internal/client/client"
	"github.com/dmitrijs2005/memberclient/internal/client/models"
	"github.com/dmitrijs2005/memberclient/internal/common"
)

// ErrReferrerNotFound is returned when the backend does not know a
// referrer id.
var ErrReferrerNotFound = errors.New("referrer not found")

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

const minPasswordLength = 6

// AuthService defines authentication operations for the shell.
//
// Contract:
//   - Login: exchange credentials for a session. Nothing is persisted here.
//   - Register: validate the sign-up form and create the account.
//   - ReferrerName: resolve a referrer id to a display name.
//   - VerifyOTP: confirm a one-time code sent after registration.
type AuthService interface {
	Login(ctx context.Context, userID, password string) (*models.Session, error)
	Register(ctx context.Context, r models.Registration) (*models.RegistrationResult, error)
	ReferrerName(ctx context.Context, referrerID string) (string, error)
	VerifyOTP(ctx context.Context, userID, otp string) (string, error)
}

type authService struct {
	client client.Doer
}

// NewAuthService constructs an AuthService sending through c, normally the
// unauthenticated HTTPClient.
func NewAuthService(c client.Doer) AuthService {
	return &authService{client: c}
}

type loginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// Login posts the credentials. The response body is the session itself.
func (a *authService) Login(ctx context.Context, userID, password string) (*models.Session, error) {
	body, err := a.client.Do(ctx, client.Request{
		Method:   http.MethodPost,
		Path:     "/auth/login",
		Body:     loginRequest{UserID: userID, Password: password},
		Fallback: "Invalid user ID or password",
	})
	if err != nil {
		return nil, err
	}

	var sess models.Session
	if err := decodeJSON(body, &sess); err != nil {
		return nil, err
	}
	if !sess.Valid() {
		return nil, &client.Error{Kind: client.KindServer, Message: client.MsgBadResponse}
	}
	return &sess, nil
}

type registerRequest struct {
	FullName string `json:"fullname"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Referrer string `json:"referrer"`
	Password string `json:"password"`
}

// Register checks the form locally, confirms the referrer exists and then
// creates the account. Validation failures are ValidationErrors and send no
// registration request.
func (a *authService) Register(ctx context.Context, r models.Registration) (*models.RegistrationResult, error) {
	err := ApplyFirst(
		Rule{
			Check: func() bool {
				return r.FullName != "" && r.Email != "" && r.Referrer != "" &&
					r.Phone != "" && r.Password != "" && r.ConfirmPassword != ""
			},
			Error: ValidationError{Field: "form", Message: "All fields are required!"},
		},
		Rule{
			Check: func() bool { return phonePattern.MatchString(r.Phone) },
			Error: ValidationError{Field: "phone", Message: "Phone number must be exactly 10 digits!"},
		},
		Rule{
			Check: func() bool { return len(r.Password) >= minPasswordLength },
			Error: ValidationError{Field: "password", Message: "Password must be at least 6 characters long!"},
		},
	)
	if err != nil {
		return nil, err
	}

	if _, err := a.ReferrerName(ctx, r.Referrer); err != nil {
		if errors.Is(err, ErrReferrerNotFound) || errors.Is(err, client.ErrClient) {
			return nil, ValidationErrors{{Field: "referrer", Message: "Referral ID is invalid or empty!"}}
		}
		return nil, err
	}

	if r.Password != r.ConfirmPassword {
		return nil, ValidationErrors{{Field: "confirmPassword", Message: "Passwords do not match!"}}
	}

	body, err := a.client.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body: registerRequest{
			FullName: common.NormalizeID(r.FullName),
			Phone:    r.Phone,
			Email:    r.Email,
			Referrer: common.NormalizeID(r.Referrer),
			Password: r.Password,
		},
		Fallback: "Registration failed",
	})
	if err != nil {
		return nil, err
	}

	env, err := client.DecodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	var data struct {
		UserID string `json:"userId"`
	}
	if err := client.DecodeData(body, &data, false); err != nil {
		return nil, err
	}

	res := &models.RegistrationResult{UserID: data.UserID, Message: env.Message}
	if res.Message == "" {
		res.Message = "Registration successful!"
	}
	return res, nil
}

func (a *authService) ReferrerName(ctx context.Context, referrerID string) (string, error) {
	id := common.NormalizeID(referrerID)
	if id == "" {
		return "", ErrReferrerNotFound
	}

	body, err := a.client.Do(ctx, client.Request{
		Method:   http.MethodGet,
		Path:     "/referral/getreferralname/" + url.PathEscape(id),
		Fallback: "Failed to fetch referrer name",
	})
	if err != nil {
		return "", err
	}

	env, err := client.DecodeEnvelope(body)
	if err != nil {
		return "", err
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "Failed to fetch referrer name"
		}
		return "", fmt.Errorf("%w: %s", ErrReferrerNotFound, msg)
	}

	var data struct {
		FullName string `json:"fullName"`
	}
	if err := client.DecodeData(body, &data, true); err != nil {
		return "", err
	}
	if data.FullName == "" {
		return "", ErrReferrerNotFound
	}
	return data.FullName, nil
}

type verifyOTPRequest struct {
	UserID string `json:"userId"`
	OTP    string `json:"otp"`
}

func (a *authService) VerifyOTP(ctx context.Context, userID, otp string) (string, error) {
	if otp == "" {
		return "", ValidationErrors{{Field: "otp", Message: "OTP is required"}}
	}

	body, err := a.client.Do(ctx, client.Request{
		Method:   http.MethodPost,
		Path:     "/auth/verify-otp",
		Body:     verifyOTPRequest{UserID: common.NormalizeID(userID), OTP: otp},
		Fallback: "OTP verification failed",
	})
	if err != nil {
		return "", err
	}

	env, err := client.DecodeEnvelope(body)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
