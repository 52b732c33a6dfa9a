package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	SpreadsheetID   string `json:"spreadsheetId"`
	CredentialsFile string `json:"credentialsFile"`
	UserWorksheet   string `json:"userWorksheet"`
	DataWorksheet   string `json:"dataWorksheet"`

	// StoreBackend selects the tabular store: "google" (remote
	// spreadsheet), "excel" (local workbook) or "memory" (demo).
	StoreBackend string `json:"storeBackend"`
	WorkbookPath string `json:"workbookPath"`

	IntentDBPath string `json:"intentDbPath"`
	ListenPort   int    `json:"listenPort"`
	LogPath      string `json:"logPath"`
	LogLevel     string `json:"logLevel"`
	Timezone     string `json:"timezone"`

	OriginNodes  []string `json:"originNodes"`
	Vendors      []string `json:"vendors"`
	VehicleTypes []string `json:"vehicleTypes"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./yard_config.json"

func defaults() Config {
	return Config{
		UserWorksheet: "AppUser",
		DataWorksheet: "AppData",
		StoreBackend:  "google",
		WorkbookPath:  "./yard_data.xlsx",
		IntentDBPath:  "./yard.db",
		ListenPort:    8080,
		LogPath:       "app.log",
		LogLevel:      "info",
		Timezone:      "Asia/Bangkok",
		OriginNodes:   []string{"SSW", "TPK"},
		Vendors: []string{
			"PJT", "TTA", "WML", "SPT", "TPS", "TKQ", "PRM",
			"TRN", "NES", "SWL", "TAE", "PCT", "SRY", "KJT",
		},
		VehicleTypes: []string{"4W5CBM", "4W10CBM", "4W12CBM", "4W13CBM"},
	}
}

func LoadConfig() (Config, error) {
	return LoadFrom(configFilePath)
}

func LoadFrom(path string) (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = defaults()
			return cfg, nil
		}
		return Config{}, err
	}

	tempCfg := defaults()
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		return Config{}, err
	}
	cfg = tempCfg
	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	if newCfg.ListenPort == 0 {
		newCfg.ListenPort = 8080
	}
	if newCfg.Timezone == "" {
		newCfg.Timezone = "Asia/Bangkok"
	}

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func (c Config) ValidOrigin(v string) bool      { return contains(c.OriginNodes, v) }
func (c Config) ValidVendor(v string) bool      { return contains(c.Vendors, v) }
func (c Config) ValidVehicleType(v string) bool { return contains(c.VehicleTypes, v) }
