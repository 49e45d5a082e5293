package baasbox

import (
	"net/http"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// state is the per-client configuration and session. It is replaced as a
// whole by Init; afterwards only the session token changes.
type state struct {
	mu     sync.RWMutex
	config Config

	// epoch is bumped by every Init. Responses to calls issued under an
	// older epoch must not write the session.
	epoch uint64
}

// snapshot is what a single request sees. It is copied under the read lock so
// a request never mixes the token of one login with the config of another.
type snapshot struct {
	epoch        uint64
	baseURL      string
	appCode      string
	session      string
	deviceTokens DeviceTokens
	socialTokens SocialTokens
	httpClient   *http.Client
	logger       hclog.Logger
}

func (s *state) replace(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	s.epoch++
}

func (s *state) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		epoch:        s.epoch,
		baseURL:      s.config.BaseURL,
		appCode:      s.config.AppCode,
		session:      s.config.Session,
		deviceTokens: s.config.DeviceTokens,
		socialTokens: s.config.SocialTokens,
		httpClient:   s.config.HTTPClient,
		logger:       s.config.Logger,
	}
}

// recordSession stores the token returned by login or signup. It reports
// false if the client was re-initialized while the call was in flight.
func (s *state) recordSession(epoch uint64, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return false
	}
	s.config.Session = token
	return true
}

// clearSession forgets token after logout. A newer login, or a re-init, keeps
// its own token.
func (s *state) clearSession(epoch uint64, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch || s.config.Session != token {
		return false
	}
	s.config.Session = ""
	return true
}

func (s *state) session() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.Session
}
