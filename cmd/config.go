package cmd

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Config holds the default values of the global flags, read from the
// environment.
type Config struct {
	Store    string `env:"BBK_STORE" default:"bonds.json"`
	Currency string `env:"BBK_CURRENCY" default:"RUB"`
	Verbose  string `env:"BBK_VERBOSE" default:"false"`
	Addr     string `env:"BBK_ADDR" default:":8080"`
}

// LoadConfig reads the configuration from the environment, using the default
// value of each variable that is not set.
func LoadConfig() Config {
	var c Config
	c.loadFromEnv(os.Getenv)
	return c
}

// loadFromEnv sets every field from its env variable, or its default.
func (c *Config) loadFromEnv(getenv func(string) string) {
	t := reflect.TypeOf(*c)
	v := reflect.ValueOf(c).Elem()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		value := getenv(field.Tag.Get("env"))
		if value == "" {
			value = field.Tag.Get("default")
		}
		v.Field(i).SetString(value)
	}
}

// verbose returns the Verbose field as a boolean, false if it is not one.
func (c Config) verbose() bool {
	b, err := strconv.ParseBool(c.Verbose)
	return err == nil && b
}

// environ returns the configuration as environment variables.
func (c Config) environ() []string {
	t := reflect.TypeOf(c)
	v := reflect.ValueOf(c)
	env := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		env = append(env, t.Field(i).Tag.Get("env")+"="+v.Field(i).String())
	}
	return env
}

// String returns the configuration as a string
func (c Config) String() string {
	var sb strings.Builder
	t := reflect.TypeOf(c)
	v := reflect.ValueOf(c)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		value := maskSecret(v.Field(i).String())
		sb.WriteString(fmt.Sprintf("  %s (%s):  %s\n", field.Name, field.Tag.Get("env"), value))
	}
	return sb.String()
}

// maskSecret hides the password of a URL like redis://:secret@host/0.
func maskSecret(value string) string {
	scheme, rest, ok := strings.Cut(value, "://")
	if !ok {
		return value
	}
	userinfo, host, ok := strings.Cut(rest, "@")
	if !ok {
		return value
	}
	user, _, hasPassword := strings.Cut(userinfo, ":")
	if !hasPassword {
		return value
	}
	return scheme + "://" + user + ":" + strings.Repeat("*", 7) + "@" + host
}
