// Package cmd provides the root command and CLI setup for podify.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"podify.dev/pkg/podify/internal/adapter"
	"podify.dev/pkg/podify/internal/domain"
	m "podify.dev/pkg/podify/internal/model"
)

var fsAdapter adapter.SourceFSAdapter

// newOrchestrator is swapped in tests that need to observe the wiring.
var newOrchestrator = domain.NewOrchestrator

func init() {
	configureRootFlags(rootCmd)

	fsAdapter = adapter.NewLocalSourceFSAdapter()
}

const layoutHelp = `Files are moved from the type-first layout into pods:
  app/routes/post.js                  -> app/pods/post/route.js
  app/controllers/post/comments.js    -> app/pods/post/comments/controller.js
  app/components/nav-bar.js           -> app/pods/components/nav-bar/component.js
  app/templates/components/nav-bar.hbs -> app/pods/components/nav-bar/template.hbs`

const rootLongDescription = `Podify restructures an application's app/ directory from the
type-first layout (routes/, controllers/, templates/, components/) into a
feature-first pod layout under app/<pod>/. Only file locations change.

` + layoutHelp

const convertLongDescription = `Move every route, controller, template and component into the pod layout.

Each file is announced before it moves and, unless --force is given, must be
confirmed. Files that are already converted or whose destination exists are
skipped, so a second run is a no-op.

` + layoutHelp

const planLongDescription = `Print the batches a conversion would execute, in order, without touching
the tree.

` + layoutHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "podify",
		Short: "Restructure an app directory into pods",
		Long:  rootLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP(dirFlagName, "d", viper.GetString(dirFlagName), "project directory containing app/")
	bindFlagToConfig(flags.Lookup(dirFlagName), dirFlagName)

	flags.String(podFlagName, viper.GetString(podFlagName), "name of the pod directory created under app/")
	bindFlagToConfig(flags.Lookup(podFlagName), podFlagName)

	flags.Bool(skipComponentsFlagName, viper.GetBool(skipComponentsFlagName), "leave components and their templates in place")
	bindFlagToConfig(flags.Lookup(skipComponentsFlagName), skipComponentsFlagName)

	flags.StringArrayP(excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "skip directories or files matching a glob relative to the project (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludeFlagName), excludeConfigKey)

	flags.BoolP(verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.String(logFileFlagName, viper.GetString(logFilenameKey), "path of the rotating log file")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// prepareRun configures logging and loads the run configuration shared by
// convert and plan.
func prepareRun() (m.RunConfig, error) {
	configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

	return loadRunConfig()
}
