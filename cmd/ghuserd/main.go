package main

import (
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/jointwt/ghuser"
	"github.com/jointwt/ghuser/internal"
)

var (
	bind    string
	debug   bool
	version bool

	config       string
	saveSettings string
	name         string
	apiURI       string
	apiToken     string
	workers      int
	maxQueue     int
	fetchTimeout time.Duration
	taskTTL      time.Duration
)

func init() {
	flag.BoolVarP(&version, "version", "v", false, "display version information")
	flag.BoolVarP(&debug, "debug", "D", false, "enable debug logging")
	flag.StringVarP(&bind, "bind", "b", "0.0.0.0:8000", "[int]:<port> to bind to")

	flag.StringVarP(&config, "config", "c", "", "YAML settings file overriding flags")
	flag.StringVar(&saveSettings, "save-settings", "", "write the effective settings to a YAML file and exit")
	flag.StringVarP(&name, "name", "n", internal.DefaultName, "set the instance's name")
	flag.StringVarP(&apiURI, "api-uri", "u", internal.DefaultAPIURI, "GitHub API endpoint to query")
	flag.StringVarP(&apiToken, "api-token", "t", "", "GitHub API token used to authenticate lookups")
	flag.IntVarP(&workers, "workers", "w", internal.DefaultWorkers, "number of workers in the shared pool (0 runs lookups inline)")
	flag.IntVarP(&maxQueue, "max-queue", "q", internal.DefaultMaxQueue, "size of the worker pool's task queue")
	flag.DurationVarP(&fetchTimeout, "fetch-timeout", "T", internal.DefaultFetchTimeout, "deadline of a single lookup")
	flag.DurationVar(&taskTTL, "task-ttl", internal.DefaultTaskTTL, "how long finished tasks can be looked up")
}

func flagNameFromEnvironmentName(s string) string {
	s = strings.ToLower(s)
	s = strings.Replace(s, "_", "-", -1)
	return s
}

func ParseArgs() error {
	for _, v := range os.Environ() {
		vals := strings.SplitN(v, "=", 2)
		flagName := flagNameFromEnvironmentName(vals[0])
		fn := flag.CommandLine.Lookup(flagName)
		if fn == nil || fn.Changed {
			continue
		}
		if err := fn.Value.Set(vals[1]); err != nil {
			return err
		}
	}
	flag.Parse()
	return nil
}

func main() {
	if err := ParseArgs(); err != nil {
		log.WithError(err).Fatal("error parsing arguments")
	}

	if version {
		fmt.Printf("ghuserd v%s", ghuser.FullVersion())
		os.Exit(0)
	}

	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	options := []internal.Option{
		internal.WithName(name),
		internal.WithAPIURI(apiURI),
		internal.WithAPIToken(apiToken),
		internal.WithWorkers(workers),
		internal.WithMaxQueue(maxQueue),
		internal.WithFetchTimeout(fetchTimeout),
		internal.WithTaskTTL(taskTTL),
	}
	if config != "" {
		options = append(options, internal.WithConfigFile(config))
	}

	if saveSettings != "" {
		conf, err := internal.LoadConfig(options...)
		if err != nil {
			log.WithError(err).Fatal("error loading config")
		}
		if err := conf.Settings().Save(saveSettings); err != nil {
			log.WithError(err).Fatal("error saving settings")
		}
		log.Infof("settings saved to %s", saveSettings)
		os.Exit(0)
	}

	svr, err := internal.NewServer(bind, options...)
	if err != nil {
		log.WithError(err).Fatal("error creating server")
	}

	log.Infof("%s listening on http://%s", path.Base(os.Args[0]), bind)
	if err := svr.Run(); err != nil {
		log.WithError(err).Fatal("error running or shutting down server")
	}
}
