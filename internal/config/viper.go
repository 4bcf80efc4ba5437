// Package config reads settings through Viper with a direct environment
// fallback for variables loaded after Viper bound its keys.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// GetString returns the Viper value of key. When Viper has no value the
// upper-cased environment variable is checked.
func GetString(key string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return os.Getenv(envName(key))
}

// GetStrings returns a comma separated setting as a list. Blank items are
// dropped.
func GetStrings(key string) []string {
	if list := viper.GetStringSlice(key); len(list) > 1 {
		return trim(list)
	}
	return trim(strings.Split(GetString(key), ","))
}

// Require returns the value of key and whether it is set.
func Require(key string) (string, bool) {
	v := strings.TrimSpace(GetString(key))
	return v, v != ""
}

func envName(key string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

func trim(list []string) []string {
	var out []string
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
