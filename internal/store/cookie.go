package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
)

// CookieMedium binds the credential pair to one request/response cycle.
// Reads come from the request cookies, writes become Set-Cookie headers
// on the response. Writes are overlaid on reads so a value written
// earlier in the same request is visible immediately, the way
// document.cookie behaves in a browser.
type CookieMedium struct {
	r      *http.Request
	w      http.ResponseWriter
	maxAge time.Duration

	token   *string
	user    *models.UserProfile
	userSet bool
	cleared bool
}

func NewCookieMedium(w http.ResponseWriter, r *http.Request, maxAge time.Duration) *CookieMedium {
	if maxAge <= 0 {
		maxAge = DefaultCookieMaxAge
	}
	return &CookieMedium{r: r, w: w, maxAge: maxAge}
}

func (c *CookieMedium) Token(ctx context.Context) (string, bool) {
	if c.token != nil {
		return *c.token, *c.token != ""
	}
	if c.cleared {
		return "", false
	}
	for _, name := range []string{TokenCookie, LegacyTokenCookie} {
		if ck, err := c.r.Cookie(name); err == nil && ck.Value != "" {
			return ck.Value, true
		}
	}
	return "", false
}

func (c *CookieMedium) SetToken(ctx context.Context, token string) error {
	c.setCookie(TokenCookie, token, int(c.maxAge.Seconds()))
	c.token = &token
	c.cleared = false
	return nil
}

func (c *CookieMedium) User(ctx context.Context) (*models.UserProfile, bool) {
	if c.userSet {
		return c.user, c.user != nil
	}
	if c.cleared {
		return nil, false
	}
	ck, err := c.r.Cookie(UserCookie)
	if err != nil || ck.Value == "" {
		return nil, false
	}
	raw, err := url.QueryUnescape(ck.Value)
	if err != nil {
		// unreadable cookie reads as "no stored user"
		return nil, false
	}
	var u models.UserProfile
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, false
	}
	return &u, true
}

func (c *CookieMedium) SetUser(ctx context.Context, u *models.UserProfile) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	// cookie values cannot hold raw JSON, so it travels escaped
	c.setCookie(UserCookie, url.QueryEscape(string(raw)), int(c.maxAge.Seconds()))
	c.user = u
	c.userSet = true
	c.cleared = false
	return nil
}

// Clear expires every auth cookie immediately, including the legacy name
func (c *CookieMedium) Clear(ctx context.Context) error {
	for _, name := range []string{TokenCookie, UserCookie, LegacyTokenCookie} {
		http.SetCookie(c.w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			SameSite: http.SameSiteLaxMode,
		})
	}
	c.token = nil
	c.user = nil
	c.userSet = false
	c.cleared = true
	return nil
}

func (c *CookieMedium) setCookie(name, value string, maxAge int) {
	http.SetCookie(c.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		SameSite: http.SameSiteLaxMode,
	})
}
