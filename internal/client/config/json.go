package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/akarpov/blogbox/internal/flagx"
	"github.com/akarpov/blogbox/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// may be given as strings ("1s") or as integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL     string         `json:"server_base_url"`
	StateDBPath       string         `json:"state_db_path"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
	AuthorQuietPeriod timex.Duration `json:"author_quiet_period"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flags. Missing flag means no JSON is loaded. Read or
// unmarshal errors panic; intended order is defaults -> parseJson ->
// parseFlags with later stages overriding earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.StateDBPath != "" {
		cfg.StateDBPath = jc.StateDBPath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.AuthorQuietPeriod.Duration != 0 {
		cfg.AuthorQuietPeriod = time.Duration(jc.AuthorQuietPeriod.Duration)
	}
}
