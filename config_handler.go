package main

import (
	"encoding/json"
	"net/http"

	"lhsyard/app"
	"lhsyard/config"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// GetConfigHandler returns the current configuration.
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cfg)
	}
}

// SaveConfigHandler persists configuration edits made from the UI.
// Store backend and credentials changes take effect on restart; enum
// lists and worksheet names are picked up immediately.
func SaveConfigHandler(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newCfg config.Config
		if err := json.NewDecoder(r.Body).Decode(&newCfg); err != nil {
			writeJSONError(w, "Invalid request body.", http.StatusBadRequest)
			return
		}

		switch newCfg.StoreBackend {
		case "google", "excel", "memory":
		default:
			writeJSONError(w, "storeBackend must be google, excel or memory.", http.StatusBadRequest)
			return
		}

		if err := config.SaveConfig(newCfg); err != nil {
			a.Log.Errorf("error saving config: %v", err)
			writeJSONError(w, "Saving the configuration failed.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Configuration saved."})
	}
}

// MetaHandler serves the entry-form enum lists to the UI.
func MetaHandler(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := a.Cfg()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string][]string{
			"originNodes":  cfg.OriginNodes,
			"vendors":      cfg.Vendors,
			"vehicleTypes": cfg.VehicleTypes,
		})
	}
}
