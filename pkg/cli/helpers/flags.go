package helpers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/devantler-tech/snapp/pkg/timer"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// TimingFlagName is the persistent flag that enables timing output.
	TimingFlagName = "timing"
	// VerboseFlagName is the persistent flag that enables debug logging.
	VerboseFlagName = "verbose"
)

var (
	// ErrNilCommand is returned when a helper receives a nil command.
	ErrNilCommand = errors.New("command is nil")
	// ErrFlagNotFound is returned when the requested flag is not defined.
	ErrFlagNotFound = errors.New("flag not found")
)

// IsTimingEnabled reports whether --timing is set on cmd or one of its parents.
func IsTimingEnabled(cmd *cobra.Command) (bool, error) {
	return boolFlag(cmd, TimingFlagName)
}

// IsVerboseEnabled reports whether --verbose is set on cmd or one of its parents.
func IsVerboseEnabled(cmd *cobra.Command) (bool, error) {
	return boolFlag(cmd, VerboseFlagName)
}

// MaybeTimer returns tmr when timing is enabled for cmd and nil otherwise.
func MaybeTimer(cmd *cobra.Command, tmr timer.Timer) timer.Timer {
	if tmr == nil {
		return nil
	}

	enabled, err := IsTimingEnabled(cmd)
	if err != nil || !enabled {
		return nil
	}

	return tmr
}

func boolFlag(cmd *cobra.Command, name string) (bool, error) {
	if cmd == nil {
		return false, ErrNilCommand
	}

	flag := lookupFlag(cmd, name)
	if flag == nil {
		return false, fmt.Errorf("%w: --%s", ErrFlagNotFound, name)
	}

	enabled, err := strconv.ParseBool(flag.Value.String())
	if err != nil {
		return false, fmt.Errorf("read --%s: %w", name, err)
	}

	return enabled, nil
}

func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag
	}

	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag
	}

	return cmd.InheritedFlags().Lookup(name)
}
