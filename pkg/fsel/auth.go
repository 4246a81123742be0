package fsel

import (
	"context"

	"github.com/fsel/admin-console-api/internal/models"
)

type loginRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	IsPersisMission bool   `json:"isPersisMission"`
	PlatformCode    string `json:"platformCode"`
}

type loginResult struct {
	AccessToken string `json:"accessToken"`
}

// Login authenticates the console's service account against the auth gateway
// and returns the bearer token. It is the only unauthenticated call besides
// the package listing.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	payload := loginRequest{
		Username:        username,
		Password:        password,
		IsPersisMission: true,
		PlatformCode:    c.cfg.AdminPlatformCode,
	}
	var result loginResult
	err := c.call(ctx, "auth", "login", "POST", c.cfg.AuthBaseURL+"/v1/auth/login",
		payload, false, "Admin login failed.", &result)
	if err != nil {
		return "", err
	}
	if result.AccessToken == "" {
		return "", &APIError{Message: "Admin login returned no access token."}
	}
	return result.AccessToken, nil
}

type signUpRequest struct {
	FullName     string  `json:"fullName"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Role         string  `json:"role"`
	ReferralCode *string `json:"referralCode"`
	PlatformCode string  `json:"platformCode"`
}

type signUpResult struct {
	ID models.UserID `json:"id"`
}

// SignUp creates a new student account and returns its UserID. The account
// starts unconfirmed; ConfirmOTP completes activation.
func (c *Client) SignUp(ctx context.Context, fullName, email, password string) (models.UserID, error) {
	payload := signUpRequest{
		FullName:     fullName,
		Email:        email,
		Password:     password,
		Role:         "Student",
		PlatformCode: c.cfg.SignUpPlatformCode,
	}
	var result signUpResult
	err := c.call(ctx, "auth", "sign_up", "POST", c.cfg.AuthBaseURL+"/v1.1/user/sign-up",
		payload, true, "Failed to create new account.", &result)
	if err != nil {
		return "", err
	}
	if result.ID == "" {
		return "", &APIError{Message: "Sign-up returned no user id."}
	}
	return result.ID, nil
}

type confirmOtpRequest struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

// ConfirmOTP submits the email OTP on behalf of the student, activating the
// account without any email round trip.
func (c *Client) ConfirmOTP(ctx context.Context, email, otp string) error {
	payload := confirmOtpRequest{Email: email, Otp: otp}
	return c.call(ctx, "auth", "confirm_otp", "POST", c.cfg.AuthBaseURL+"/v1.1/user/confirm-otp-sign-up",
		payload, true, "Failed to confirm OTP.", nil)
}
