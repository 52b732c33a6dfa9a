package auth

import (
	"encoding/json"
	"fmt"
	"net/http"

	"lhsyard/app"
	"lhsyard/session"
	"lhsyard/sheet"
)

type loginPayload struct {
	UserID string `json:"userId"`
}

// LoginHandler checks the entered id against the user worksheet and
// opens a session on a match. No password, no lockout; membership is
// the whole gate.
func LoginHandler(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if payload.UserID == "" {
			http.Error(w, "User ID is required", http.StatusBadRequest)
			return
		}

		cfg := a.Cfg()
		users, err := sheet.LoadUsers(r.Context(), a.Store, cfg.UserWorksheet)
		if err != nil {
			a.Log.Errorf("login: reading user worksheet failed: %v", err)
			http.Error(w, "Could not reach the user table. Try again.", http.StatusBadGateway)
			return
		}

		found := false
		for _, u := range users {
			if u.UserID == payload.UserID {
				found = true
				break
			}
		}
		if !found {
			a.Log.Warnf("log-in attempt failed for user ID: %s", payload.UserID)
			http.Error(w, "User ID not found. Please check and try again.", http.StatusUnauthorized)
			return
		}

		s := a.Sessions.Create(payload.UserID)
		session.SetCookie(w, s)
		a.Log.Infof("user %s successfully logged in", payload.UserID)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": fmt.Sprintf("Welcome, User %s!", payload.UserID),
			"userId":  payload.UserID,
		})
	}
}

// LogoutHandler drops the session and clears the cookie.
func LogoutHandler(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s, ok := a.Sessions.FromRequest(r); ok {
			a.Sessions.Delete(s.Token)
			a.Log.Infof("user %s logged out", s.ActingUser)
		}
		session.ClearCookie(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

// SessionHandler reports the caller's session state for the UI.
func SessionHandler(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		s, ok := a.Sessions.FromRequest(r)
		if !ok {
			json.NewEncoder(w).Encode(session.Session{})
			return
		}
		json.NewEncoder(w).Encode(s)
	}
}
