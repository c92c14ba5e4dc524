package viewer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/puppybowl/internal/dependencies/mocks"
	"github.com/mcoot/puppybowl/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	random  *mocks.MockRandom
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	svc, err := New(s.random, Config{})
	s.Require().NoError(err)
	s.service = svc
}

func (s *ServiceSuite) TestNewTokenUsesRandom() {
	s.random.QueueToken("abc123")

	token, err := s.service.NewToken()
	s.Require().NoError(err)
	s.Equal("abc123", token)
}

func (s *ServiceSuite) TestNewTokenPropagatesError() {
	s.random.Err = errors.New("entropy exhausted")

	_, err := s.service.NewToken()
	s.Error(err)
}

func (s *ServiceSuite) TestResolveIsStable() {
	a, err := s.service.Resolve("abc123")
	s.Require().NoError(err)
	b, err := s.service.Resolve("abc123")
	s.Require().NoError(err)

	s.Equal(a, b)
	s.Len(string(a), 64)
}

func (s *ServiceSuite) TestResolveDoesNotExposeToken() {
	id, err := s.service.Resolve("abc123")
	s.Require().NoError(err)
	s.NotContains(string(id), "abc123")
}

func (s *ServiceSuite) TestResolveDistinguishesTokens() {
	a, _ := s.service.Resolve("abc123")
	b, _ := s.service.Resolve("abc124")
	s.NotEqual(a, b)
}

func (s *ServiceSuite) TestResolveRejectsInvalidTokens() {
	for _, token := range []string{"", "has space", "semi;colon", "slash/y", strings.Repeat("a", 129)} {
		_, err := s.service.Resolve(token)
		s.ErrorIs(err, model.ErrInvalidViewer, "token %q", token)
	}
}

func (s *ServiceSuite) TestSecretChangesIdentity() {
	keyed, err := New(s.random, Config{Secret: []byte("server-secret")})
	s.Require().NoError(err)

	plain, _ := s.service.Resolve("abc123")
	withKey, _ := keyed.Resolve("abc123")
	s.NotEqual(plain, withKey)
}

func TestNewRejectsOversizedSecret(t *testing.T) {
	_, err := New(mocks.NewMockRandom(), Config{Secret: make([]byte, 65)})
	if err == nil {
		t.Fatal("expected error for oversized secret")
	}
}
