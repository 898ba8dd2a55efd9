package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"fitkit/internal/cli"
	apperrors "fitkit/internal/errors"
	"fitkit/internal/fitmodel"
)

// config: manage the persisted fit configuration collection.
func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage saved fit configurations",
	}
	cmd.AddCommand(configListCmd(), configAddCmd(), configUpdateCmd(), configRemoveCmd())
	return cmd
}

// config list: show all saved configurations.
func configListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved fit configurations",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rows := make([][3]string, 0, appCtx.Set.Len())
			for _, cfg := range appCtx.Set.Configurations() {
				rows = append(rows, [3]string{cfg.Name(), cfg.Model(), cfg.Estimator()})
			}
			cli.PrintConfigurationList(rows, cmd.OutOrStdout())
		},
	}
}

// config add <name> <model>: create and persist a fit configuration.
func configAddCmd() *cobra.Command {
	var (
		estimator string
		sets      []string
		fixes     []string
	)
	cmd := &cobra.Command{
		Use:   "add <name> <model>",
		Short: "Add a fit configuration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			custom, err := parseOverrides(sets, fixes)
			if err != nil {
				return err
			}
			if err := appCtx.Set.Add(args[0], args[1], estimator, custom); err != nil {
				return err
			}
			return appCtx.SaveConfigurations()
		},
	}
	cmd.Flags().StringVar(&estimator, "estimator", "", "estimator used to seed initial parameters")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "parameter override as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&fixes, "fix", nil, "parameter to hold fixed, as name or name=value (repeatable)")
	return cmd
}

// config update <name>: replace a configuration's estimator and parameter
// overrides in one step. Both fields are replaced together, so omitting
// --set/--fix clears any existing overrides.
func configUpdateCmd() *cobra.Command {
	var (
		estimator string
		sets      []string
		fixes     []string
	)
	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Replace a configuration's estimator and parameter overrides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			custom, err := parseOverrides(sets, fixes)
			if err != nil {
				return err
			}
			var overrides map[string]fitmodel.Parameter
			if custom != nil {
				overrides = make(map[string]fitmodel.Parameter, custom.Len())
				for _, name := range custom.Names() {
					param, _ := custom.Get(name)
					overrides[name] = param
				}
			}
			if err := appCtx.Set.ReplaceParameters(args[0], estimator, overrides); err != nil {
				return err
			}
			return appCtx.SaveConfigurations()
		},
	}
	cmd.Flags().StringVar(&estimator, "estimator", "", "estimator used to seed initial parameters")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "parameter override as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&fixes, "fix", nil, "parameter to hold fixed, as name or name=value (repeatable)")
	return cmd
}

// config remove <name>: delete a configuration. Removing an absent name is a
// no-op, matching the collection semantics.
func configRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a fit configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appCtx.Set.Remove(args[0])
			return appCtx.SaveConfigurations()
		},
	}
}

// parseOverrides builds a parameter override table from --set and --fix
// flag values.
func parseOverrides(sets, fixes []string) (*fitmodel.Parameters, error) {
	if len(sets) == 0 && len(fixes) == 0 {
		return nil, nil
	}
	params := fitmodel.NewParameters()

	for _, entry := range sets {
		name, value, err := splitOverride(entry)
		if err != nil {
			return nil, err
		}
		param := fitmodel.NewParameter(value)
		if existing, ok := params.Get(name); ok {
			param.Vary = existing.Vary
		}
		params.Set(name, param)
	}

	for _, entry := range fixes {
		var (
			name  string
			value float64
		)
		if strings.Contains(entry, "=") {
			var err error
			name, value, err = splitOverride(entry)
			if err != nil {
				return nil, err
			}
		} else {
			name = entry
			if existing, ok := params.Get(name); ok {
				value = existing.Value
			}
		}
		param := fitmodel.NewParameter(value)
		param.Vary = false
		params.Set(name, param)
	}

	return &params, nil
}

// splitOverride parses a name=value flag entry.
func splitOverride(entry string) (string, float64, error) {
	name, raw, found := strings.Cut(entry, "=")
	if name == "" || !found {
		return "", 0, apperrors.NewConfigError("invalid override %q (want name=value)", entry)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", 0, apperrors.NewConfigError("invalid override value in %q: %v", entry, err)
	}
	return name, value, nil
}
