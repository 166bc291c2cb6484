package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/terraincognita07/kcal/internal/services"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const GoogleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var ErrProfileUnavailable = errors.New("identity profile unavailable")

// Provider runs the authorization-code flow against an external identity
// provider.
type Provider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (services.Profile, error)
}

type GoogleProvider struct {
	config      *oauth2.Config
	userInfoURL string
}

func NewGoogleProvider(clientID string, clientSecret string, callbackURL string) *GoogleProvider {
	return newGoogleProvider(&oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  callbackURL,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"profile"},
	}, GoogleUserInfoURL)
}

func newGoogleProvider(config *oauth2.Config, userInfoURL string) *GoogleProvider {
	return &GoogleProvider{config: config, userInfoURL: userInfoURL}
}

func (provider *GoogleProvider) AuthCodeURL(state string) string {
	return provider.config.AuthCodeURL(state)
}

type googleUserInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (provider *GoogleProvider) Exchange(ctx context.Context, code string) (services.Profile, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return services.Profile{}, services.ErrAuthenticationFailed
	}

	token, err := provider.config.Exchange(ctx, code)
	if err != nil {
		return services.Profile{}, fmt.Errorf("%w: exchange code: %v", services.ErrAuthenticationFailed, err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, provider.userInfoURL, nil)
	if err != nil {
		return services.Profile{}, fmt.Errorf("build userinfo request: %w", err)
	}
	response, err := provider.config.Client(ctx, token).Do(request)
	if err != nil {
		return services.Profile{}, fmt.Errorf("%w: %v", ErrProfileUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, response.Body)
		return services.Profile{}, fmt.Errorf("%w: userinfo status %d", ErrProfileUnavailable, response.StatusCode)
	}

	info := googleUserInfo{}
	if err := json.NewDecoder(io.LimitReader(response.Body, 1<<20)).Decode(&info); err != nil {
		return services.Profile{}, fmt.Errorf("%w: decode userinfo: %v", ErrProfileUnavailable, err)
	}
	if strings.TrimSpace(info.ID) == "" {
		return services.Profile{}, fmt.Errorf("%w: userinfo without id", ErrProfileUnavailable)
	}

	return services.Profile{
		ExternalID:  strings.TrimSpace(info.ID),
		DisplayName: strings.TrimSpace(info.Name),
	}, nil
}
