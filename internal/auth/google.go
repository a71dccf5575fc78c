package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"kaizen/internal/logger"
)

const (
	// credentialsFile holds the OAuth client downloaded from the console.
	credentialsFile = "credentials.json"
	// sessionFile caches the obtained token and profile between runs.
	sessionFile = "session.json"

	loopbackPort = "6789"
	userInfoURL  = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var signInScopes = []string{
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/userinfo.email",
}

type session struct {
	Token    *oauth2.Token `json:"token"`
	Identity Identity      `json:"identity"`
}

// GoogleProvider signs in through the OAuth authorization-code flow with a
// loopback redirect, caching the session on disk so later runs start
// signed in.
type GoogleProvider struct {
	configDir string

	mu       sync.Mutex
	current  *Identity
	watchers map[int]func(*Identity)
	nextID   int
}

// NewGoogleProvider loads a cached session from configDir if one exists.
func NewGoogleProvider(configDir string) *GoogleProvider {
	p := &GoogleProvider{
		configDir: configDir,
		watchers:  map[int]func(*Identity){},
	}
	if s, err := p.loadSession(); err == nil && s.Token != nil && s.Token.RefreshToken != "" {
		id := s.Identity
		p.current = &id
	}
	return p
}

func (p *GoogleProvider) SignIn(ctx context.Context) (*Identity, error) {
	cfg, err := p.oauthConfig()
	if err != nil {
		return nil, err
	}

	tok, err := tokenFromLoopback(ctx, cfg)
	if err != nil {
		return nil, err
	}

	id, err := fetchIdentity(ctx, cfg, tok)
	if err != nil {
		return nil, err
	}

	if err := p.saveSession(session{Token: tok, Identity: *id}); err != nil {
		logger.Warn("could not cache auth session")
	}

	p.setState(id)
	return id, nil
}

func (p *GoogleProvider) SignOut(context.Context) error {
	if err := os.Remove(filepath.Join(p.configDir, sessionFile)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	p.setState(nil)
	return nil
}

func (p *GoogleProvider) OnAuthStateChange(fn func(*Identity)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.watchers[id] = fn
	current := p.current
	p.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.watchers, id)
			p.mu.Unlock()
		})
	}
}

func (p *GoogleProvider) setState(id *Identity) {
	p.mu.Lock()
	p.current = id
	watchers := make([]func(*Identity), 0, len(p.watchers))
	for _, fn := range p.watchers {
		watchers = append(watchers, fn)
	}
	p.mu.Unlock()

	for _, fn := range watchers {
		fn(id)
	}
}

func (p *GoogleProvider) oauthConfig() (*oauth2.Config, error) {
	raw, err := os.ReadFile(filepath.Join(p.configDir, credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnauthorizedClient, credentialsFile, err)
	}
	cfg, err := google.ConfigFromJSON(raw, signInScopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrUnauthorizedClient, credentialsFile, err)
	}
	cfg.RedirectURL = fmt.Sprintf("http://localhost:%s/oauth2callback", loopbackPort)
	return cfg, nil
}

func (p *GoogleProvider) loadSession() (session, error) {
	var s session
	raw, err := os.ReadFile(filepath.Join(p.configDir, sessionFile))
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return s, err
	}
	return s, nil
}

func (p *GoogleProvider) saveSession(s session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(p.configDir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(p.configDir, sessionFile), raw, 0o600)
}

// tokenFromLoopback runs the authorization-code flow: a local listener
// captures the redirect while the user approves access in their browser.
func tokenFromLoopback(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", ":"+loopbackPort)
	if err != nil {
		return nil, fmt.Errorf("%w: port %s busy: %v", ErrFlowBlocked, loopbackPort, err)
	}
	defer listener.Close()

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if deny := r.URL.Query().Get("error"); deny != "" {
				http.Error(w, "authorization denied", http.StatusBadRequest)
				errCh <- fmt.Errorf("%w: %s", ErrFlowCanceled, deny)
				return
			}
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "authorization code not found", http.StatusBadRequest)
				errCh <- fmt.Errorf("%w: no code in redirect", ErrInternal)
				return
			}
			fmt.Fprint(w, "Sign-in complete. You can close this window.")
			codeCh <- code
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}()
	defer server.Shutdown(context.Background())

	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Fprintf(os.Stderr, "Open this URL in your browser to sign in:\n%s\n", authURL)

	select {
	case code := <-codeCh:
		tok, err := cfg.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("%w: token exchange: %v", ErrNetwork, err)
		}
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-time.After(5 * time.Minute):
		return nil, fmt.Errorf("%w: authorization timed out", ErrFlowCanceled)
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrFlowCanceled, ctx.Err())
	}
}

func fetchIdentity(ctx context.Context, cfg *oauth2.Config, tok *oauth2.Token) (*Identity, error) {
	client := cfg.Client(ctx, tok)
	resp, err := client.Get(userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: userinfo: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: userinfo status %d", ErrInternal, resp.StatusCode)
	}

	var info struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: decode userinfo: %v", ErrInternal, err)
	}

	return &Identity{
		UID:         info.ID,
		DisplayName: info.Name,
		Email:       info.Email,
		PhotoURL:    info.Picture,
	}, nil
}
