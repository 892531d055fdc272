package stubserver

import (
	"net/http"

	"venue-console/internal/domain"
	"venue-console/internal/observability"
)

const sessionCookie = "session_id"

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := s.Users.Authenticate(req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token := s.Sessions.Create(*profile)
	s.setSessionCookie(w, token)

	observability.FromContext(r.Context()).Info("login", "username", profile.Username)
	writeJSON(w, http.StatusOK, domain.LoginResponse{Message: "Login successful"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.Sessions.Delete(cookie.Value)
	}
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "No session")
		return
	}

	fresh, err := s.Sessions.Rotate(cookie.Value)
	if err != nil {
		s.clearSessionCookie(w)
		writeError(w, http.StatusUnauthorized, "Session cannot be refreshed")
		return
	}

	s.setSessionCookie(w, fresh)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Session refreshed"})
}

func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	profile, err := s.Sessions.ValidateSession(r.Context(), cookie.Value)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	writeJSON(w, http.StatusOK, domain.WhoAmIResponse{UserDetails: profile})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
