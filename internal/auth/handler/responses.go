package handler

import (
	"time"

	"lahu/internal/auth/models"
	"lahu/internal/auth/service"
)

type UserResponse struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone,omitempty"`
	BloodType      string     `json:"bloodType"`
	Location       string     `json:"location,omitempty"`
	Role           string     `json:"role"`
	IsAvailable    bool       `json:"isAvailable"`
	IsActive       bool       `json:"isActive"`
	TotalDonations int        `json:"totalDonations"`
	LastDonation   *time.Time `json:"lastDonation,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        UserResponse `json:"user"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:             u.ID.String(),
		Email:          u.Email,
		Name:           u.Name,
		Phone:          u.Phone,
		BloodType:      u.BloodType.String(),
		Location:       u.Location,
		Role:           string(u.Role),
		IsAvailable:    u.IsAvailable,
		IsActive:       u.IsActive,
		TotalDonations: u.TotalDonations,
		LastDonation:   u.LastDonation,
		CreatedAt:      u.CreatedAt,
	}
}

func toTokenResponse(r *service.LoginResult) TokenResponse {
	return TokenResponse{
		AccessToken: r.AccessToken,
		TokenType:   r.TokenType,
		ExpiresIn:   int(r.ExpiresIn.Seconds()),
		User:        toUserResponse(r.User),
	}
}
