package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"cloudstream/internal/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	redirectURL     = "http://localhost:8090/callback"
	userinfoURL     = "https://www.googleapis.com/oauth2/v3/userinfo"
	revokeURL       = "https://oauth2.googleapis.com/revoke"
	driveReadScope  = "https://www.googleapis.com/auth/drive.readonly"
	emailScope      = "https://www.googleapis.com/auth/userinfo.email"
	profileScope    = "https://www.googleapis.com/auth/userinfo.profile"
	authFlowTimeout = 5 * time.Minute
)

// AuthFlow runs the browser-based OAuth consent flow: print an authorization
// URL, catch the redirect on a local callback server, exchange the code for
// a token, and resolve the user profile. One resolution point; the caller
// awaits a Session or an error.
type AuthFlow struct {
	config *oauth2.Config
	logger *slog.Logger

	// PromptURL receives the authorization URL the user must visit.
	PromptURL func(url string)
}

// NewAuthFlow creates an auth flow for the configured OAuth client.
func NewAuthFlow(clientID, clientSecret string, logger *slog.Logger) *AuthFlow {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthFlow{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{driveReadScope, emailScope, profileScope},
			Endpoint:     google.Endpoint,
		},
		logger: logger,
	}
}

// Run executes the consent flow and returns an authenticated session.
func (a *AuthFlow) Run(ctx context.Context) (domain.Session, error) {
	state := fmt.Sprintf("%d", time.Now().UnixNano())
	authURL := a.config.AuthCodeURL(state)

	if a.PromptURL != nil {
		a.PromptURL(authURL)
	}
	a.logger.Info("waiting for OAuth consent", "url", authURL)

	code, err := a.waitForCallback(ctx, state)
	if err != nil {
		return domain.Session{}, err
	}

	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	session := domain.Session{
		AccessToken: token.AccessToken,
		Expiry:      token.Expiry,
	}

	if user, err := FetchUserInfo(ctx, token.AccessToken); err != nil {
		a.logger.Warn("failed to fetch user info", "error", err)
	} else {
		session.User = user
	}

	return session, nil
}

// waitForCallback serves the local OAuth redirect and returns the code.
func (a *AuthFlow) waitForCallback(ctx context.Context, state string) (string, error) {
	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			errChan <- fmt.Errorf("oauth state mismatch")
			fmt.Fprint(w, "Error: state mismatch. You can close this window.")
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no authorization code received")
			fmt.Fprint(w, "Error: no authorization code received. You can close this window.")
			return
		}
		codeChan <- code
		fmt.Fprint(w, "Authorization successful! You can close this window and return to the terminal.")
	})

	server := &http.Server{Addr: ":8090", Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- fmt.Errorf("callback server error: %w", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	select {
	case code := <-codeChan:
		return code, nil
	case err := <-errChan:
		return "", err
	case <-time.After(authFlowTimeout):
		return "", fmt.Errorf("OAuth flow timed out after %s", authFlowTimeout)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// FetchUserInfo resolves the signed-in user's profile from the token.
func FetchUserInfo(ctx context.Context, accessToken string) (*domain.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userinfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status %d", resp.StatusCode)
	}

	var user domain.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	return &user, nil
}

// RevokeToken best-effort revokes an access token at logout.
func RevokeToken(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, revokeURL+"?token="+accessToken, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
