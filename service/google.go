package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/viper"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleUser is the subset of the userinfo response the app cares about
type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func GoogleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     viper.GetString("google.client_id"),
		ClientSecret: viper.GetString("google.client_secret"),
		RedirectURL:  viper.GetString("google.redirect_url"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// FetchGoogleUser exchanges an OAuth code and fetches the profile of
// the user who signed in.
func FetchGoogleUser(ctx context.Context, code string) (*GoogleUser, error) {
	conf := GoogleOAuthConfig()

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange OAuth code, %w", err)
	}

	resp, err := conf.Client(ctx, tok).Get(userinfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch userinfo, %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request returned %v", resp.Status)
	}

	var u GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo, %w", err)
	}

	return &u, nil
}
