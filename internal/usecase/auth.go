package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/ports"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/usecase/columns"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/usecase/validate"
)

var errNoToken = errors.New("response carried no access token")

// Auth manages the stored auth context.
type Auth struct {
	api      ports.APICaller
	sessions ports.SessionStore
}

func NewAuth(api ports.APICaller, sessions ports.SessionStore) *Auth {
	return &Auth{api: api, sessions: sessions}
}

// Current returns the stored session without calling the backend.
func (uc *Auth) Current() (domain.Session, error) {
	return uc.sessions.Load()
}

// Login posts credentials and stores the issued tokens and user.
func (uc *Auth) Login(ctx context.Context, email, password string) (domain.Session, error) {
	values := map[string]string{"email": email, "password": password}
	if err := validate.Form(domain.ResourceLogin.Fields, values, false); err != nil {
		return domain.Session{}, err
	}
	return uc.issue(ctx, domain.ResourceLogin, values, true)
}

// Register creates an account. When the backend also returns tokens the user is logged in;
// otherwise the returned session is empty.
func (uc *Auth) Register(ctx context.Context, values map[string]string) (domain.Session, error) {
	if err := validate.Form(domain.ResourceRegister.Fields, values, false); err != nil {
		return domain.Session{}, err
	}
	return uc.issue(ctx, domain.ResourceRegister, values, false)
}

func (uc *Auth) issue(ctx context.Context, res domain.Resource, values map[string]string, needToken bool) (domain.Session, error) {
	payload, err := domain.TransformForm(res.Fields, values)
	if err != nil {
		return domain.Session{}, err
	}

	resp, err := uc.api.Do(ctx, domain.Call{
		Method:    http.MethodPost,
		Path:      res.CreatePath,
		JSON:      payload.JSON,
		Anonymous: true,
	})
	if err != nil {
		return domain.Session{}, err
	}

	sess := sessionFromBody(resp.Body)
	if sess.Empty() {
		if needToken {
			return domain.Session{}, &domain.OpError{Op: "auth.login", Kind: domain.KindAPI, Path: res.CreatePath, Err: errNoToken}
		}
		return domain.Session{}, nil
	}

	sess, err = uc.save(sess)
	if err != nil {
		return domain.Session{}, err
	}
	if sess.User == nil {
		if user, err := uc.WhoAmI(ctx); err == nil {
			sess.User = user
		}
	}
	return sess, nil
}

// WhoAmI fetches the current user and refreshes the stored user record.
func (uc *Auth) WhoAmI(ctx context.Context) (domain.Record, error) {
	sess, err := uc.requireSession("auth.whoami")
	if err != nil {
		return nil, err
	}

	resp, err := uc.api.Do(ctx, domain.GetCall(domain.ResourceMe.ItemPath, nil))
	if err != nil {
		return nil, err
	}
	user, err := columns.Item(resp.Body)
	if err != nil {
		return nil, err
	}

	sess.User = user
	if err := uc.sessions.Save(sess); err != nil {
		return nil, err
	}
	return user, nil
}

// Refresh exchanges the refresh token for new tokens. The stored user is kept.
func (uc *Auth) Refresh(ctx context.Context) (domain.Session, error) {
	sess, err := uc.requireSession("auth.refresh")
	if err != nil {
		return domain.Session{}, err
	}
	if sess.RefreshToken == "" {
		return domain.Session{}, &domain.OpError{Op: "auth.refresh", Kind: domain.KindUnauthorized, Err: domain.ErrUnauthorized}
	}

	resp, err := uc.api.Do(ctx, domain.Call{
		Method:    http.MethodPost,
		Path:      "/auth/refresh",
		JSON:      map[string]any{"refresh_token": sess.RefreshToken},
		Anonymous: true,
	})
	if err != nil {
		return domain.Session{}, err
	}

	next := sessionFromBody(resp.Body)
	if next.Empty() {
		return domain.Session{}, &domain.OpError{Op: "auth.refresh", Kind: domain.KindAPI, Path: "/auth/refresh", Err: errNoToken}
	}
	if next.RefreshToken == "" {
		next.RefreshToken = sess.RefreshToken
	}
	if next.User == nil {
		next.User = sess.User
	}
	return uc.save(next)
}

// save stores sess and returns it as stored, so fields the store derives
// (such as the token expiry) reach the caller.
func (uc *Auth) save(sess domain.Session) (domain.Session, error) {
	if err := uc.sessions.Save(sess); err != nil {
		return domain.Session{}, err
	}
	return uc.sessions.Load()
}

// Logout tells the backend (best effort) and always clears the stored session.
func (uc *Auth) Logout(ctx context.Context) error {
	sess, err := uc.sessions.Load()
	if err == nil && !sess.Empty() {
		_, _ = uc.api.Do(ctx, domain.Call{Method: http.MethodPost, Path: "/auth/logout"})
	}
	return uc.sessions.Clear()
}

func (uc *Auth) requireSession(op string) (domain.Session, error) {
	sess, err := uc.sessions.Load()
	if err != nil {
		return domain.Session{}, err
	}
	if sess.Empty() {
		return domain.Session{}, &domain.OpError{Op: op, Kind: domain.KindUnauthorized, Err: domain.ErrUnauthorized}
	}
	return sess, nil
}

// sessionFromBody reads the token fields the backend has used over time.
func sessionFromBody(body []byte) domain.Session {
	var raw struct {
		AccessToken      string         `json:"access_token"`
		AccessTokenCamel string         `json:"accessToken"`
		Token            string         `json:"token"`
		RefreshToken     string         `json:"refresh_token"`
		RefreshCamel     string         `json:"refreshToken"`
		User             map[string]any `json:"user"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.Session{}
	}

	s := domain.Session{
		Token:        raw.Token,
		AccessToken:  firstNonEmpty(raw.AccessToken, raw.AccessTokenCamel),
		RefreshToken: firstNonEmpty(raw.RefreshToken, raw.RefreshCamel),
	}
	if raw.User != nil {
		s.User = domain.Record(raw.User)
	}
	return s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
