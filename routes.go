package main

import (
	"encoding/json"
	"net/http"

	"lhsyard/app"
	"lhsyard/assignbay"
	"lhsyard/auth"
	"lhsyard/checkin"
	"lhsyard/replacement"
	"lhsyard/report"
)

func SetupRoutes(mux *http.ServeMux, a *app.App) {

	mux.HandleFunc("/api/login", auth.LoginHandler(a))
	mux.HandleFunc("/api/logout", auth.LogoutHandler(a))
	mux.HandleFunc("/api/session", auth.SessionHandler(a))

	mux.HandleFunc("/api/checkin/lookup", checkin.LookupHandler(a))
	mux.HandleFunc("/api/checkin/confirm", checkin.ConfirmHandler(a))

	mux.HandleFunc("/api/replacement/confirm", replacement.ConfirmHandler(a))

	mux.HandleFunc("/api/assignbay/lookup", assignbay.LookupHandler(a))
	mux.HandleFunc("/api/assignbay/confirm", assignbay.ConfirmHandler(a))

	mux.HandleFunc("/api/report/dashboard", report.DashboardHandler(a))
	mux.HandleFunc("/api/report/export_csv", report.ExportCSVHandler(a))

	mux.HandleFunc("/api/meta", MetaHandler(a))

	mux.HandleFunc("/api/intents", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := a.Sessions.Require(w, r); !ok {
			return
		}
		pending, err := a.Intents.Pending()
		if err != nil {
			a.Log.Errorf("listing pending intents: %v", err)
			http.Error(w, "Failed to list pending operations", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(pending)
	})

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			GetConfigHandler()(w, r)
		case http.MethodPost:
			SaveConfigHandler(a)(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
}
