package app

import (
	"regexp"

	"github.com/spf13/cobra"
)

// pflag reports "-3" as "unknown shorthand flag: '3' in -3".
var negativeNumberFlag = regexp.MustCompile(`unknown shorthand flag: '\d' in (-\d+)$`)

// NegativeNumberArg reports whether a flag parse error came from a negative
// integer argument, and returns that argument.
func NegativeNumberArg(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	m := negativeNumberFlag.FindStringSubmatch(err.Error())
	if m == nil {
		return "", false
	}
	return m[1], true
}

// OnNegativeNumber installs a flag error handler on cmd that hands negative
// integer arguments to wrap. Other flag errors pass through unchanged.
func OnNegativeNumber(cmd *cobra.Command, wrap func(arg string) error) {
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		if arg, ok := NegativeNumberArg(err); ok {
			return wrap(arg)
		}
		return err
	})
}
