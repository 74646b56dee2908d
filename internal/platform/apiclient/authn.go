package apiclient

import (
	"context"
	"errors"
	"net/http"

	"ems/internal/domain/auth"
	"ems/internal/domain/records"
	"ems/internal/domain/session"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userPayload struct {
	ID          records.FlexString `json:"id"`
	Username    string             `json:"username"`
	Email       string             `json:"email"`
	FirstName   string             `json:"first_name"`
	LastName    string             `json:"last_name"`
	Role        string             `json:"role"`
	Department  string             `json:"department"`
	Designation string             `json:"designation"`
}

func (u userPayload) profile() session.Profile {
	return session.Profile{
		ID:          string(u.ID),
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        auth.Role(u.Role),
		Department:  u.Department,
		Designation: u.Designation,
	}
}

type loginResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

// Login exchanges credentials for a token and profile. A 401 here means bad
// credentials, not an expired session.
func (c *Client) Login(ctx context.Context, username, password string) (session.LoginResult, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login/", loginRequest{Username: username, Password: password}, &resp)
	if errors.Is(err, records.ErrSessionExpired) {
		return session.LoginResult{}, session.ErrInvalidCredentials
	}
	if err != nil {
		return session.LoginResult{}, err
	}

	return session.LoginResult{Token: resp.Token, Profile: resp.User.profile()}, nil
}

// CurrentUser fetches the profile bound to the active token.
func (c *Client) CurrentUser(ctx context.Context) (session.Profile, error) {
	var user userPayload
	if err := c.do(ctx, http.MethodGet, "/auth/user/", nil, &user); err != nil {
		return session.Profile{}, err
	}
	return user.profile(), nil
}

// Logout revokes the token server side. An already-rejected token is not an
// error; the caller is clearing the session either way.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout/", nil, nil)
	if errors.Is(err, records.ErrSessionExpired) {
		return nil
	}
	return err
}
