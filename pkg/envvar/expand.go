// Package envvar expands ${VAR} placeholders in configuration values.
package envvar

import (
	"os"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// pattern matches ${VAR_NAME} and ${VAR_NAME:-default}.
// Group 1 is the variable name, group 2 the optional default.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::-([^}]*))?\}`)

const defaultSyntaxMarker = ":-"

// Expand replaces ${VAR_NAME} and ${VAR_NAME:-default} placeholders with the
// values of the referenced environment variables.
// An unset variable yields its default, or an empty string and a debug log line
// when no default is given.
func Expand(value string) string {
	if !strings.Contains(value, "${") {
		return value
	}

	return pattern.ReplaceAllStringFunc(value, expandMatch)
}

// ExpandAll expands every element of values in place and returns it.
func ExpandAll(values []string) []string {
	for i, value := range values {
		values[i] = Expand(value)
	}

	return values
}

func expandMatch(match string) string {
	groups := pattern.FindStringSubmatch(match)
	varName := groups[1]

	if envValue, ok := os.LookupEnv(varName); ok {
		return envValue
	}

	if strings.Contains(match, defaultSyntaxMarker) {
		return groups[2]
	}

	logrus.WithField("variable", varName).Debug("environment variable not set")

	return ""
}
