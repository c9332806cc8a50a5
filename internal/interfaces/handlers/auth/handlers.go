package auth

import (
	"errors"

	"axiso-backend/internal/application/access"
	authsvc "axiso-backend/internal/application/auth"
	"axiso-backend/internal/middleware"
	"axiso-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	UserFinder authsvc.UserFinder
	Rdb        *redis.Client
	Config     middleware.SessionConfig
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /api/v1/auth/login — verify credentials, start a fresh session
// and index it under user_sessions:<user_id>.
func (h *Handlers) Login(c *fiber.Ctx) error {
	if h.UserFinder == nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return response.Error(c, authsvc.ErrEmailPasswordRequired.Error(), fiber.StatusBadRequest, nil)
	}

	user, err := h.UserFinder.FindByEmailAndPassword(c.UserContext(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, authsvc.ErrEmailPasswordRequired):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case errors.Is(err, authsvc.ErrInvalidEmail), errors.Is(err, authsvc.ErrIncorrectPassword):
		log.Info().Str("trace_id", middleware.GetTraceID(c)).Msg("login rejected")
		return response.Error(c, err.Error(), fiber.StatusUnauthorized, nil)
	default:
		return response.FromError(c, err)
	}

	sessionID := middleware.RegenerateSessionID(c)
	su := middleware.SessionUser{
		UserID:   user.UserID.String(),
		Fullname: user.Fullname,
		Email:    user.Email,
		Role:     user.Role,
	}
	middleware.SetSessionUser(c, su)

	if err := h.Rdb.SAdd(c.UserContext(), authsvc.UserSessionsPrefix+su.UserID, sessionID).Err(); err != nil {
		log.Error().Err(err).Str("user_id", su.UserID).Msg("track user session failed")
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = "s:" + sessionID
	c.Cookie(&cookie)

	log.Info().Str("user_id", su.UserID).Msg("user logged in")
	sess := access.Session{UserID: su.UserID, Email: su.Email, Role: su.Role}
	return response.Success(c, "Login successful", fiber.Map{
		"user":         su,
		"capabilities": sess.Capabilities(),
	}, nil)
}

// Me GET /api/v1/auth/me — the signed-in user and what the UI may offer them.
func (h *Handlers) Me(c *fiber.Ctx) error {
	raw := middleware.GetUser(c)
	sess, err := authsvc.VerifyUser(raw)
	if err != nil {
		log.Debug().Str("path", c.Path()).Bool("session_present", middleware.GetSessionID(c) != "").
			Msg("auth/me: not authenticated")
		return response.Error(c, "Not authenticated", fiber.StatusUnauthorized, nil)
	}
	m := raw.(map[string]interface{})
	fullname, _ := m["fullname"].(string)
	return response.Success(c, "Authenticated", fiber.Map{
		"user": middleware.SessionUser{
			UserID:   sess.UserID,
			Fullname: fullname,
			Email:    sess.Email,
			Role:     sess.Role,
		},
		"capabilities": sess.Capabilities(),
	}, nil)
}

// Logout DELETE /api/v1/auth/logout — drop the session and clear the cookie.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	ctx := c.UserContext()

	if sess, err := authsvc.VerifyUser(middleware.GetUser(c)); err == nil && sessionID != "" {
		if err := h.Rdb.SRem(ctx, authsvc.UserSessionsPrefix+sess.UserID, sessionID).Err(); err != nil {
			log.Warn().Err(err).Str("user_id", sess.UserID).Msg("untrack user session failed")
		}
	}
	if sessionID != "" {
		if err := h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID).Err(); err != nil {
			log.Warn().Err(err).Msg("delete session failed")
		}
	}
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logged out successfully", nil, nil)
}

// LogoutAll DELETE /api/v1/auth/sessions — end every session of the signed-in user.
func (h *Handlers) LogoutAll(c *fiber.Ctx) error {
	sess, err := authsvc.VerifyUser(middleware.GetUser(c))
	if err != nil {
		return response.Error(c, "Not authenticated", fiber.StatusUnauthorized, nil)
	}
	n, err := authsvc.DestroyUserSessions(c.UserContext(), h.Rdb, sess.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", sess.UserID).Msg("destroy user sessions failed")
		return response.Error(c, "Could not end sessions", fiber.StatusServiceUnavailable, nil)
	}
	middleware.DestroySession(c)
	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)
	log.Info().Str("user_id", sess.UserID).Int("sessions", n).Msg("all sessions ended")
	return response.Success(c, "All sessions ended", fiber.Map{"sessions": n}, nil)
}
