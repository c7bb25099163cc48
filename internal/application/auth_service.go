// internal/application/auth_service.go
package application

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/galliconnect/server/internal/domain"
	"github.com/galliconnect/server/internal/ports"
	"github.com/galliconnect/server/pkg/auth"
)

// adminCredentials is a static allow-list. Admin identities are
// synthetic and never persisted.
var adminCredentials = []struct {
	email    string
	password string
}{
	{email: "admin@galliconnect.in", password: "admin@123"},
}

type pendingLogin struct {
	user domain.User
	code string
}

// AuthService drives the AUTH -> VERIFY -> resolved state machine.
// Pending verifications are held in memory keyed by email; a code is
// generated once per transition to VERIFY and survives any number of
// failed attempts.
type AuthService struct {
	store  ports.Store
	mailer ports.Mailer
	log    *logrus.Logger

	mu      sync.Mutex
	pending map[string]pendingLogin
}

func NewAuthService(store ports.Store, mailer ports.Mailer, log *logrus.Logger) *AuthService {
	return &AuthService{
		store:   store,
		mailer:  mailer,
		log:     log,
		pending: make(map[string]pendingLogin),
	}
}

// LoginResult is either a resolved session (Token set) or a transition
// to the VERIFY step (PendingVerification set, code dispatched).
type LoginResult struct {
	User                domain.User `json:"user"`
	Token               string      `json:"token,omitempty"`
	PendingVerification bool        `json:"pendingVerification,omitempty"`
}

func (s *AuthService) Login(ctx context.Context, email, password string, role domain.UserRole) (*LoginResult, error) {
	if role == domain.RoleAdmin {
		for _, cred := range adminCredentials {
			if cred.email == email && cred.password == password {
				return s.resolve(domain.User{
					ID:              "admin-1",
					Email:           email,
					Name:            "System Admin",
					Role:            domain.RoleAdmin,
					Contact:         "000",
					Address:         "HQ",
					IsEmailVerified: true,
				})
			}
		}
		return nil, ErrInvalidCredentials
	}

	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email && u.Role == role {
			if u.IsEmailVerified {
				return s.resolve(u)
			}
			return s.beginVerification(ctx, u)
		}
	}
	return nil, ErrAccountNotFound
}

// Registration is the sign-up payload. Coordinates are a one-shot
// client-side geolocation capture and may be absent.
type Registration struct {
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Role      domain.UserRole `json:"role"`
	Contact   string          `json:"contact"`
	Address   string          `json:"address"`
	ShopType  domain.ShopType `json:"shopType,omitempty"`
	Area      string          `json:"area,omitempty"`
	Latitude  *float64        `json:"latitude,omitempty"`
	Longitude *float64        `json:"longitude,omitempty"`
}

func (s *AuthService) Register(ctx context.Context, reg Registration) (*LoginResult, error) {
	user := domain.User{
		ID:              uuid.NewString(),
		Email:           reg.Email,
		Name:            reg.Name,
		Role:            reg.Role,
		Contact:         reg.Contact,
		Address:         reg.Address,
		IsVerified:      reg.Role == domain.RoleCustomer,
		IsEmailVerified: false,
	}
	if err := s.store.UpsertUser(ctx, user); err != nil {
		return nil, err
	}

	if reg.Role == domain.RoleRetailer {
		shop := domain.Shop{
			ID:        "shop-" + user.ID,
			OwnerID:   user.ID,
			Name:      reg.Name + "'s Store",
			Type:      reg.ShopType,
			Area:      reg.Area,
			Address:   reg.Address,
			IsOpen:    false,
			Rating:    domain.DefaultShopRating,
			Latitude:  reg.Latitude,
			Longitude: reg.Longitude,
		}
		if err := s.store.UpsertShop(ctx, shop); err != nil {
			return nil, err
		}
	}

	return s.beginVerification(ctx, user)
}

// VerifyCode resolves a pending login when the submitted code matches
// exactly. A mismatch keeps the pending state, the code is neither
// regenerated nor rate limited.
func (s *AuthService) VerifyCode(ctx context.Context, email, code string) (*LoginResult, error) {
	s.mu.Lock()
	p, ok := s.pending[email]
	s.mu.Unlock()
	if !ok || code != p.code {
		return nil, ErrInvalidCode
	}

	if err := s.store.SetEmailVerified(ctx, p.user.ID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	delete(s.pending, email)
	s.mu.Unlock()

	user := p.user
	user.IsEmailVerified = true
	return s.resolve(user)
}

// beginVerification generates the one-time code and moves the flow to
// VERIFY. Dispatch failure is logged but does not block the transition,
// the code already exists in memory regardless of delivery.
func (s *AuthService) beginVerification(ctx context.Context, user domain.User) (*LoginResult, error) {
	code := fmt.Sprintf("%06d", 100000+rand.Intn(900000))

	s.mu.Lock()
	s.pending[user.Email] = pendingLogin{user: user, code: code}
	s.mu.Unlock()

	if err := s.mailer.SendVerificationCode(ctx, user.Name, user.Email, code); err != nil {
		s.log.WithError(err).WithField("email", user.Email).Warn("verification code dispatch failed")
	}
	return &LoginResult{User: user, PendingVerification: true}, nil
}

func (s *AuthService) resolve(user domain.User) (*LoginResult, error) {
	token, err := auth.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: token}, nil
}
