// Package utils holds the Google OAuth plumbing behind the gmail client.
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/troop900/treelot/internal/config"
)

// ScopeGmailSend is the only Google API scope the scheduler needs; email is
// its sole outbound integration.
const ScopeGmailSend = "https://www.googleapis.com/auth/gmail.send"

const (
	authPort     = 3000
	callbackPath = "/oauth/callback"
	authTimeout  = 5 * time.Minute
	tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"
	tokenDirName = ".treelot/tokens"
)

// flowMu serializes token acquisition so concurrent callers never race two
// browser flows or clobber each other's token file.
var flowMu sync.Mutex

var memToken *oauth2.Token

// NewGoogleOAuthConfig builds an oauth2.Config from the installed-app client
// credentials, redirecting the consent callback to the local listener.
func NewGoogleOAuthConfig(oauthCfg *config.OAuthClientConfig) (*oauth2.Config, error) {
	raw, err := json.Marshal(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal oauth client config: %w", err)
	}
	cfg, err := google.ConfigFromJSON(raw, ScopeGmailSend)
	if err != nil {
		return nil, fmt.Errorf("failed to parse oauth client config: %w", err)
	}
	cfg.RedirectURL = fmt.Sprintf("http://localhost:%d%s", authPort, callbackPath)
	return cfg, nil
}

// ObtainToken returns a usable access token for the environment, trying in
// order: the in-memory token, the on-disk token file (refreshing if expired),
// and finally an interactive browser consent flow. Tokens missing the gmail
// scope are discarded.
func ObtainToken(ctx context.Context, cfg *oauth2.Config, env string) (*oauth2.Token, error) {
	flowMu.Lock()
	defer flowMu.Unlock()

	if memToken != nil && memToken.Valid() {
		return memToken, nil
	}

	store := tokenStore{env: env}
	if token := reusableToken(ctx, cfg, store); token != nil {
		memToken = token
		return token, nil
	}

	fmt.Println("No valid token found - starting OAuth flow")
	token, err := browserConsentFlow(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := checkScopes(ctx, token); err != nil {
		return nil, fmt.Errorf("granted token is unusable: %w", err)
	}
	if err := store.save(token); err != nil {
		fmt.Printf("Warning: failed to persist token: %v\n", err)
	}
	memToken = token
	return token, nil
}

// ClearToken drops the in-memory token so the next caller re-reads the file.
func ClearToken() {
	flowMu.Lock()
	defer flowMu.Unlock()
	memToken = nil
}

// reusableToken loads the persisted token and returns it when still valid, or
// after a successful refresh. Returns nil when a fresh consent flow is needed.
func reusableToken(ctx context.Context, cfg *oauth2.Config, store tokenStore) *oauth2.Token {
	token, err := store.load()
	if err != nil {
		fmt.Printf("Warning: failed to load token file: %v\n", err)
		return nil
	}
	if token == nil {
		return nil
	}

	if token.Valid() {
		if err := checkScopes(ctx, token); err != nil {
			fmt.Printf("Discarding cached token: %v\n", err)
			store.delete()
			return nil
		}
		return token
	}

	if token.RefreshToken == "" {
		return nil
	}
	refreshed, err := cfg.TokenSource(ctx, token).Token()
	if err != nil {
		fmt.Printf("Token refresh failed: %v\n", err)
		return nil
	}
	if err := checkScopes(ctx, refreshed); err != nil {
		fmt.Printf("Discarding refreshed token: %v\n", err)
		store.delete()
		return nil
	}
	if err := store.save(refreshed); err != nil {
		fmt.Printf("Warning: failed to persist refreshed token: %v\n", err)
	}
	return refreshed
}

// checkScopes asks Google's tokeninfo endpoint whether the token carries the
// gmail.send scope. Consent screens let users untick scopes, so a granted
// token is not necessarily a usable one.
func checkScopes(ctx context.Context, token *oauth2.Token) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		tokenInfoURL+"?access_token="+token.AccessToken, nil)
	if err != nil {
		return fmt.Errorf("failed to build tokeninfo request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tokeninfo returned status %d: %s", resp.StatusCode, string(body))
	}

	var info struct {
		Scope string `json:"scope"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}
	if !slices.Contains(strings.Split(info.Scope, " "), ScopeGmailSend) {
		return fmt.Errorf("token lacks scope %s", ScopeGmailSend)
	}
	return nil
}

// browserConsentFlow prints the consent URL, waits for the redirect on a local
// listener and exchanges the returned code for a token.
func browserConsentFlow(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	authURL := cfg.AuthCodeURL("state", oauth2.AccessTypeOffline)
	fmt.Printf("\nVisit this URL to authorize the application:\n%s\n\n", authURL)

	code, err := awaitCallback(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to receive authorization code: %w", err)
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

// awaitCallback serves the OAuth redirect on localhost until a code arrives
// or the flow times out.
func awaitCallback(ctx context.Context) (string, error) {
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errCh <- fmt.Errorf("callback carried no authorization code")
			http.Error(w, "Authorization failed", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><h1>Authorization successful!</h1><p>You can close this window.</p></body></html>")
		codeCh <- code
	})

	server := &http.Server{Addr: fmt.Sprintf(":%d", authPort), Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("callback server error: %w", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	select {
	case code := <-codeCh:
		return code, nil
	case err := <-errCh:
		return "", err
	case <-timeoutCtx.Done():
		return "", fmt.Errorf("authorization timed out after %v", authTimeout)
	}
}

// tokenStore persists one token file per environment under the user's home
// directory, owner-readable only.
type tokenStore struct {
	env string
}

func (s tokenStore) path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, tokenDirName, fmt.Sprintf("token-%s.json", s.env)), nil
}

// load returns nil, nil when no token has been saved yet.
func (s tokenStore) load() (*oauth2.Token, error) {
	path, err := s.path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return &token, nil
}

func (s tokenStore) save(token *oauth2.Token) error {
	path, err := s.path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (s tokenStore) delete() error {
	path, err := s.path()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}
