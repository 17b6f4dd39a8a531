package main

import "github.com/urfave/cli/v2"

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "Path of the toml configuration file",
	EnvVars: []string{"CONFIG_FILE"},
}

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "Lyricroom"
	s.app.Usage = "Backend of the lyricroom social music app"
	s.app.Before = s.loadConfig
	s.app.Flags = []cli.Flag{configFlag}
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Serves every REST api and the prometheus metrics.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start cron jobs",
			Category:    "Worker",
			Description: `Runs the periodic jobs, such as removing expired stories.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate database tables",
			Category:    "Database",
			Description: `Creates or updates every table of the database.`,
		},
		{
			Action:      s.startReindex,
			Name:        "reindex",
			Usage:       "Rebuild the lyrics search index",
			Category:    "Worker",
			Description: `Indexes every lyrics stored in the database again.`,
		},
	}
}
