package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"lahu/internal/platform/config"
	"lahu/pkg/testutil"
)

// AppSuite drives the fully wired router with in-memory backends.
type AppSuite struct {
	suite.Suite
	router http.Handler
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppSuite))
}

func (s *AppSuite) SetupTest() {
	cfg := config.Server{
		CORSOrigins: []string{"*"},
		Auth: config.AuthConfig{
			JWTSigningKey:  "integration-signing-key",
			JWTIssuer:      "lahu",
			AccessTokenTTL: 30 * time.Minute,
		},
		Kafka: config.KafkaConfig{AuditTopic: "lahu.audit"},
		Seed: config.SeedConfig{
			AdminEmail:    "admin@lahu.test",
			AdminPassword: "admin-password",
		},
		RateLimit: config.RateLimitConfig{Enabled: true, AuthPerMinute: 100, DefaultPerMinute: 1000},
	}
	s.Require().NoError(cfg.Validate())

	reg := prometheus.NewRegistry()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	router, err := newRouter(context.Background(), cfg, &infra{}, log, reg, reg)
	s.Require().NoError(err)
	s.router = router
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID             string `json:"id"`
		Role           string `json:"role"`
		TotalDonations int    `json:"totalDonations"`
	} `json:"user"`
}

func (s *AppSuite) newRequest(method, path, token string, body any) *http.Request {
	req := testutil.NewJSONRequest(s.T(), method, path, body)
	if token != "" {
		testutil.WithBearer(req, token)
	}
	return req
}

func (s *AppSuite) call(method, path, token string, body any) (int, []byte) {
	rr := testutil.DoRequest(s.router, s.newRequest(method, path, token, body))
	return rr.Code, rr.Body.Bytes()
}

func (s *AppSuite) signupAndLogin(email, bloodType string) tokenResponse {
	code, body := s.call(http.MethodPost, "/api/auth/signup", "", map[string]any{
		"email":     email,
		"password":  "password123",
		"name":      "Test Donor",
		"bloodType": bloodType,
		"location":  "Kampala",
	})
	s.Require().Equal(http.StatusCreated, code, string(body))
	return s.login(email, "password123")
}

func (s *AppSuite) login(email, password string) tokenResponse {
	req := s.newRequest(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	rr := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	return *testutil.UnmarshalResponse[tokenResponse](s.T(), rr)
}

func (s *AppSuite) TestDonationLifecycle() {
	donorUser := s.signupAndLogin("donor@lahu.test", "O-")

	// register in the public donor directory
	req := s.newRequest(http.MethodPost, "/donors", donorUser.AccessToken, map[string]any{
		"name":      "Test Donor",
		"bloodType": "O-",
		"age":       30,
		"contact":   "+256700000000",
		"location":  "Kampala",
	})
	rr := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	registered := testutil.UnmarshalResponse[struct {
		ID string `json:"id"`
	}](s.T(), rr)

	// a hospital asks for A+ blood; the O- donor matches
	req = s.newRequest(http.MethodPost, "/requests", "", map[string]any{
		"patientName": "Jane",
		"bloodType":   "A+",
		"unitsNeeded": 2,
		"hospital":    "Mulago",
		"contact":     "+256711111111",
		"urgency":     "high",
	})
	rr = testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	created := testutil.UnmarshalResponse[struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}](s.T(), rr)
	s.Equal("pending", created.Status)

	req = s.newRequest(http.MethodGet, "/requests/"+created.ID+"/matches", "", nil)
	rr = testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	matches := testutil.UnmarshalResponse[struct {
		Donors []struct {
			ID string `json:"id"`
		} `json:"donors"`
	}](s.T(), rr)
	s.Require().Len(matches.Donors, 1)
	s.Equal(registered.ID, matches.Donors[0].ID)

	// the donor records a completed donation
	code, body := s.call(http.MethodPost, "/api/donations", donorUser.AccessToken, map[string]any{
		"date":      "2025-06-01",
		"location":  "Mulago",
		"status":    "completed",
		"recipient": "Jane",
	})
	s.Require().Equal(http.StatusCreated, code, string(body))

	req = s.newRequest(http.MethodGet, "/auth/me", donorUser.AccessToken, nil)
	rr = testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, rr.Code)
	me := testutil.UnmarshalResponse[struct {
		TotalDonations int `json:"totalDonations"`
	}](s.T(), rr)
	s.Equal(1, me.TotalDonations)

	req = s.newRequest(http.MethodGet, "/users/"+donorUser.User.ID+"/donations", donorUser.AccessToken, nil)
	rr = testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, rr.Code)
	history := testutil.UnmarshalResponse[[]struct {
		Status string `json:"status"`
	}](s.T(), rr)
	s.Require().Len(*history, 1)
	s.Equal("completed", (*history)[0].Status)

	// close the request; a closed request cannot reopen
	code, body = s.call(http.MethodPut, "/requests/"+created.ID+"/status", "", map[string]any{"status": "fulfilled"})
	s.Require().Equal(http.StatusOK, code, string(body))
	code, _ = s.call(http.MethodPut, "/requests/"+created.ID+"/status", "", map[string]any{"status": "pending"})
	s.Equal(http.StatusConflict, code)
}

func (s *AppSuite) TestDonationHistoryIsPrivate() {
	alice := s.signupAndLogin("alice@lahu.test", "A+")
	bob := s.signupAndLogin("bob@lahu.test", "B+")
	admin := s.login("admin@lahu.test", "admin-password")
	s.Equal("admin", admin.User.Role)

	code, _ := s.call(http.MethodGet, "/users/"+alice.User.ID+"/donations", bob.AccessToken, nil)
	s.Equal(http.StatusForbidden, code)

	code, _ = s.call(http.MethodGet, "/users/"+alice.User.ID+"/donations", admin.AccessToken, nil)
	s.Equal(http.StatusOK, code)

	code, _ = s.call(http.MethodGet, "/donations", "", nil)
	s.Equal(http.StatusUnauthorized, code)
}

func (s *AppSuite) TestAdminOnlyUserListing() {
	donorUser := s.signupAndLogin("carol@lahu.test", "AB-")
	admin := s.login("admin@lahu.test", "admin-password")

	code, _ := s.call(http.MethodGet, "/users", donorUser.AccessToken, nil)
	s.Equal(http.StatusForbidden, code)

	code, _ = s.call(http.MethodGet, "/api/users", admin.AccessToken, nil)
	s.Equal(http.StatusOK, code)
}

func (s *AppSuite) TestLogoutRevokesToken() {
	user := s.signupAndLogin("dave@lahu.test", "O+")

	code, _ := s.call(http.MethodPost, "/auth/logout", user.AccessToken, nil)
	s.Require().Equal(http.StatusNoContent, code)

	code, _ = s.call(http.MethodGet, "/auth/me", user.AccessToken, nil)
	s.Equal(http.StatusUnauthorized, code)
}

func (s *AppSuite) TestCompatibilityIsPublic() {
	req := s.newRequest(http.MethodPost, "/compatibility", "", map[string]any{
		"donorType":     "O-",
		"recipientType": "AB+",
	})
	rr := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	check := testutil.UnmarshalResponse[struct {
		Compatible bool `json:"compatible"`
	}](s.T(), rr)
	s.True(check.Compatible)

	req = s.newRequest(http.MethodGet, "/api/compatibility/A-", "", nil)
	rr = testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, rr.Code)
	profile := testutil.UnmarshalResponse[struct {
		CanReceiveFrom []string `json:"canReceiveFrom"`
	}](s.T(), rr)
	s.ElementsMatch([]string{"A-", "O-"}, profile.CanReceiveFrom)
}

func (s *AppSuite) TestRouterBuildsWithoutMetrics() {
	cfg := config.Server{
		Auth:  config.AuthConfig{JWTSigningKey: "integration-signing-key", JWTIssuer: "lahu", AccessTokenTTL: time.Minute},
		Seed:  config.SeedConfig{AdminEmail: "admin@lahu.test", AdminPassword: "admin-password"},
		Kafka: config.KafkaConfig{AuditTopic: "lahu.audit"},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := newRouter(context.Background(), cfg, &infra{}, log, nil, nil)
	s.Require().NoError(err)
}
