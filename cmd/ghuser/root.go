package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jointwt/ghuser"
	"github.com/jointwt/ghuser/client"
)

var configFile string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "ghuser",
	Version: ghuser.FullVersion(),
	Short:   "Command-line client to look up GitHub users",
	Long: `ghuser looks up a GitHub user's profile, followers and repositories
concurrently and displays them as a single record. Lookups that fail are
shown with placeholder values rather than failing the whole command.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// set logging level
		if viper.GetBool("debug") {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.InfoLevel)
		}
	},
}

// Execute adds all child commands to the root command
// and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Error("error executing command")
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVarP(
		&configFile, "config", "c", "",
		"config file (default is $HOME/.ghuser.yaml)",
	)

	RootCmd.PersistentFlags().BoolP(
		"debug", "d", false,
		"Enable debug logging",
	)

	RootCmd.PersistentFlags().StringP(
		"uri", "u", client.DefaultURI,
		"GitHub API endpoint URI to connect to",
	)

	RootCmd.PersistentFlags().StringP(
		"token", "t", "",
		"GitHub API token to use to authenticate to endpoints (default $GITHUB_TOKEN)",
	)

	RootCmd.PersistentFlags().DurationP(
		"timeout", "T", client.DefaultTimeout,
		"deadline of a single lookup",
	)

	viper.BindPFlag("uri", RootCmd.PersistentFlags().Lookup("uri"))
	viper.SetDefault("uri", client.DefaultURI)

	viper.BindPFlag("token", RootCmd.PersistentFlags().Lookup("token"))
	viper.SetDefault("token", os.Getenv("GITHUB_TOKEN"))

	viper.BindPFlag("timeout", RootCmd.PersistentFlags().Lookup("timeout"))
	viper.SetDefault("timeout", client.DefaultTimeout)

	viper.BindPFlag("debug", RootCmd.PersistentFlags().Lookup("debug"))
	viper.SetDefault("debug", false)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(configFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".ghuser")
		viper.SetConfigType("yaml")
	}

	// from the environment
	viper.SetEnvPrefix("GHUSER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.WithError(err).Errorf("error loading config file")
		}
		return
	}
	log.Debugf("Using config file: %s", viper.ConfigFileUsed())
}
