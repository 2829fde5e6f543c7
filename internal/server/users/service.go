package users

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/dmitrijs2005/memberclient/internal/common"
	"github.com/dmitrijs2005/memberclient/internal/server/auth"
	"github.com/dmitrijs2005/memberclient/internal/server/config"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAlreadyExists      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrReferrerNotFound   = errors.New("referrer not found")
	ErrInvalidOTP         = errors.New("invalid otp")
)

type RegisterInput struct {
	FullName string
	Phone    string
	Email    string
	Referrer string
	Password string
}

type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	bcryptCost                  int
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		bcryptCost:                  bcrypt.MinCost,
	}
}

// Seed creates a user with a fixed id. The root of the referral tree is
// created this way since every registration needs an existing referrer.
func (s *Service) Seed(ctx context.Context, id, fullName, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &User{
		ID:           common.NormalizeID(id),
		FullName:     strings.ToUpper(fullName),
		PasswordHash: hash,
		Verified:     true,
	})
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	referrer := common.NormalizeID(in.Referrer)
	if _, err := s.repo.GetUserByID(ctx, referrer); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrReferrerNotFound
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	otp, err := newOTP()
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, &User{
		FullName:     in.FullName,
		Phone:        in.Phone,
		Email:        in.Email,
		Referrer:     referrer,
		PasswordHash: hash,
		OTP:          otp,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login checks the password and returns the user with a fresh access token.
func (s *Service) Login(ctx context.Context, userID, password string) (*User, string, error) {
	user, err := s.repo.GetUserByID(ctx, common.NormalizeID(userID))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate returns the member id carried by a bearer token.
func (s *Service) Authenticate(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

func (s *Service) VerifyOTP(ctx context.Context, userID, otp string) error {
	user, err := s.repo.GetUserByID(ctx, common.NormalizeID(userID))
	if err != nil {
		return err
	}
	if user.OTP == "" || user.OTP != otp {
		return ErrInvalidOTP
	}
	user.Verified = true
	user.OTP = ""
	return s.repo.Update(ctx, user)
}

func (s *Service) Get(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// UpdateProfile overwrites the non-empty fields.
func (s *Service) UpdateProfile(ctx context.Context, userID, fullName, phone, withdrawAddress string) (*User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if fullName != "" {
		user.FullName = fullName
	}
	if phone != "" {
		user.Phone = phone
	}
	if withdrawAddress != "" {
		user.WithdrawAddress = withdrawAddress
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Referrals walks the downline of userID breadth first, at most depth
// levels deep.
func (s *Service) Referrals(ctx context.Context, userID string, depth int) ([]Referral, error) {
	var out []Referral
	level := []string{userID}
	for d := 1; d <= depth && len(level) > 0; d++ {
		var next []string
		for _, id := range level {
			children, err := s.repo.ListByReferrer(ctx, id)
			if err != nil {
				return nil, err
			}
			for _, c := range children {
				out = append(out, Referral{User: c, Level: d})
				next = append(next, c.ID)
			}
		}
		level = next
	}
	return out, nil
}

func newOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
