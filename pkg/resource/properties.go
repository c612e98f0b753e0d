package resource

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/spf13/viper"
)

const defaultPropertiesPath = "configs/application.yml"

var envPattern = regexp.MustCompile(`^\$\{([^:}]+)(?::([^}]*))?}$`)

// Properties is a flattened view over an application YAML file. String values of the form
// ${ENV_NAME:default} are resolved against the environment when loaded.
type Properties struct {
	v *viper.Viper
}

// Path returns the properties file location, honoring PROPERTIES_FILE_PATH.
func Path() string {
	if value, ok := os.LookupEnv("PROPERTIES_FILE_PATH"); ok {
		return value
	}
	return defaultPropertiesPath
}

// Load reads the YAML file at filepath.
func Load(filepath string) (*Properties, error) {
	v := viper.New()
	v.SetConfigFile(filepath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("fail to read properties: %w", err)
	}

	resolved := make(map[string]any)
	parsePropertiesMap("", v.AllSettings(), resolved)
	for key, value := range resolved {
		v.Set(key, value)
	}

	return &Properties{v: v}, nil
}

// parsePropertiesMap reads recursively the YAML file
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = resolveEnvVariable(v)
		case map[string]any:
			parsePropertiesMap(fullKey, v, result)
		default:
			result[fullKey] = v
		}
	}
}

// resolveEnvVariable replaces a ${ENV:default} value with the environment value or its default.
// Plain strings are returned untouched.
func resolveEnvVariable(value string) any {
	matches := envPattern.FindStringSubmatch(value)
	if matches == nil {
		return value
	}

	if envValue, exists := os.LookupEnv(matches[1]); exists {
		return envValue
	}
	return matches[2]
}

func (p *Properties) Get(key string) any {
	return p.v.Get(key)
}

func (p *Properties) IsSet(key string) bool {
	return p.v.IsSet(key)
}

func (p *Properties) GetString(key string) string {
	return p.v.GetString(key)
}

func (p *Properties) GetBool(key string) bool {
	return p.v.GetBool(key)
}

func (p *Properties) GetDuration(key string) time.Duration {
	return p.v.GetDuration(key)
}

func (p *Properties) GetInt(key string) int {
	return p.v.GetInt(key)
}

func (p *Properties) GetInt64(key string) int64 {
	return p.v.GetInt64(key)
}

func (p *Properties) GetFloat64(key string) float64 {
	return p.v.GetFloat64(key)
}

func (p *Properties) GetStringSlice(key string) []string {
	return p.v.GetStringSlice(key)
}

// GetStringOrDefault returns the value for key, or defaultValue when it is empty.
func (p *Properties) GetStringOrDefault(key, defaultValue string) string {
	value := p.v.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}
