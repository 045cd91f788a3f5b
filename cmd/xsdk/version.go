package main

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"golang.org/x/mod/semver"

	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
)

//go:embed version.json
var versionJSON []byte

// version returns the embedded release version in canonical semver form.
func version() (string, error) {
	v := gjson.GetBytes(versionJSON, "version").String()
	if v == "" {
		return "", sdkerrors.Validation("version", "version.json has no version")
	}
	if v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", sdkerrors.Validation("version", "invalid version "+v)
	}
	return semver.Canonical(v), nil
}

func newVersionCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the installed version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := version()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Version is %s\n", v)
			return nil
		},
	}
}
