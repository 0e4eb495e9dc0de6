package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jointwt/ghuser/client"
	"github.com/jointwt/ghuser/internal"
	"github.com/jointwt/ghuser/types"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:     "show [flags] <login>",
	Aliases: []string{"user", "get"},
	Short:   "Display a user's profile, followers and repositories",
	Long: `Looks up the given user's profile, followers and repositories in
parallel and displays the combined result. A lookup that fails is logged and
shown as a placeholder (??? for the profile, nothing for lists).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		options := []client.Option{
			client.WithURI(viper.GetString("uri")),
			client.WithTimeout(viper.GetDuration("timeout")),
		}
		if token := viper.GetString("token"); token != "" {
			options = append(options, client.WithToken(token))
		}

		cli, err := client.NewClient(options...)
		if err != nil {
			log.WithError(err).Error("error creating client")
			os.Exit(1)
		}

		asJSON, _ := cmd.Flags().GetBool("json")

		if err := show(cli, args[0], asJSON, os.Stdout); err != nil {
			log.WithError(err).Error("error retrieving user")
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolP("json", "j", false, "Output the result as JSON")
}

func show(fetcher internal.Fetcher, login string, asJSON bool, w io.Writer) error {
	// One worker per branch
	d := internal.NewDispatcher(len(internal.Branches), len(internal.Branches))
	d.Start()
	defer d.Stop()

	res, err := internal.NewAggregator(fetcher, d).Aggregate(context.Background(), login)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(types.CompositeResponse{User: res.User, Degraded: res.Degraded})
	}

	PrintComposite(w, res.User)
	for _, branch := range res.Degraded {
		fmt.Fprintf(w, "\n(warning: %s could not be retrieved)\n", branch)
	}
	return nil
}
