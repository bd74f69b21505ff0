package services

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shopline/internal/domain"
	"shopline/internal/repos"
)

var (
	ErrBadCreds     = errors.New("invalid email or password")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// CredentialVerifier hides the hashing scheme from the auth flow so it can be
// swapped without touching the calling contract.
type CredentialVerifier interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

type BcryptVerifier struct{ Cost int }

func (v BcryptVerifier) Hash(password string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(h), err
}

func (v BcryptVerifier) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type Claims struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.StandardClaims
}

type AuthService struct {
	Users  *repos.UserRepo
	Creds  CredentialVerifier
	Secret []byte
	TTL    time.Duration
}

func NewAuthService(users *repos.UserRepo, secret []byte) *AuthService {
	return &AuthService{Users: users, Creds: BcryptVerifier{}, Secret: secret, TTL: 24 * time.Hour}
}

// Register creates a new account. Duplicate email surfaces as
// repos.ErrEmailTaken and leaves no second user row behind.
func (s *AuthService) Register(name, email, password string) (*domain.User, string, error) {
	hash, err := s.Creds.Hash(password)
	if err != nil {
		return nil, "", err
	}
	u := &domain.User{ID: uuid.NewString(), Name: name, Email: email, Hash: hash}
	if err := s.Users.Create(u); err != nil {
		return nil, "", err
	}
	tok, err := s.Token(u)
	return u, tok, err
}

// SignIn resolves the account and verifies the password through the
// CredentialVerifier. Unknown email and wrong password are indistinguishable
// to the caller.
func (s *AuthService) SignIn(email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, "", ErrBadCreds
	}
	if !s.Creds.Verify(u.Hash, password) {
		return nil, "", ErrBadCreds
	}
	tok, err := s.Token(u)
	return u, tok, err
}

// UpdateProfile applies the non-empty fields and returns the user with a
// fresh token.
func (s *AuthService) UpdateProfile(id, name, email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByID(id)
	if err != nil {
		return nil, "", err
	}
	if name != "" {
		u.Name = name
	}
	if email != "" {
		u.Email = email
	}
	if password != "" {
		if u.Hash, err = s.Creds.Hash(password); err != nil {
			return nil, "", err
		}
	}
	if err := s.Users.Update(u); err != nil {
		return nil, "", err
	}
	tok, err := s.Token(u)
	return u, tok, err
}

func (s *AuthService) Token(u *domain.User) (string, error) {
	claims := Claims{
		UserID:  u.ID,
		IsAdmin: u.IsAdmin,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(s.TTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// ResolveToken validates a signed bearer credential and loads the acting user.
func (s *AuthService) ResolveToken(tokenStr string) (*domain.User, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.Secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	u, err := s.Users.ByID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return u, nil
}
