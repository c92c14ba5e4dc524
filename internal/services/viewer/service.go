package viewer

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/mcoot/puppybowl/internal/dependencies/random"
	"github.com/mcoot/puppybowl/internal/model"
)

// CookieName is the cookie carrying a browser's viewer token
const CookieName = "puppybowl_viewer"

const (
	tokenBytes     = 32
	maxTokenLength = 128
)

// Config holds configuration for the viewer service
type Config struct {
	// Secret keys the hash that turns a token into a ViewerID.
	// Empty means an unkeyed hash.
	Secret []byte
}

// Service issues viewer tokens and maps them to storage identities
type Service struct {
	random random.Random
	secret []byte
}

// New creates a new viewer Service
func New(rnd random.Random, cfg Config) (*Service, error) {
	if len(cfg.Secret) > blake2b.Size {
		return nil, fmt.Errorf("viewer secret must be at most %d bytes", blake2b.Size)
	}
	return &Service{
		random: rnd,
		secret: cfg.Secret,
	}, nil
}

// NewToken issues a fresh viewer token for a browser without one
func (s *Service) NewToken() (string, error) {
	return s.random.Token(tokenBytes)
}

// Resolve validates a token and returns the ViewerID its view state is stored under
func (s *Service) Resolve(token string) (model.ViewerID, error) {
	if !validToken(token) {
		return "", model.ErrInvalidViewer
	}

	h, err := blake2b.New256(s.secret)
	if err != nil {
		return "", err
	}
	h.Write([]byte(token))
	return model.ViewerID(hex.EncodeToString(h.Sum(nil))), nil
}

// validToken accepts non-empty base64url text of bounded length
func validToken(token string) bool {
	if token == "" || len(token) > maxTokenLength {
		return false
	}
	for _, c := range token {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
