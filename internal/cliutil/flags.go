package cliutil

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// GetString returns a string flag's value.
//
// A flag set on the command line wins. Otherwise, the value comes from viper
// (environment or config file), then from the flag's default.
func GetString(cmd *cobra.Command, flag string) string {
	value, _ := cmd.Flags().GetString(flag)
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		return value
	}

	if fromViper := viper.GetString(flag); fromViper != "" {
		return fromViper
	}

	return value
}
