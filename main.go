package main

import (
	"fmt"
	"log"
	"os"

	auditcmd "github.com/dtnitsch/shipment-dossier/internal/audit"
	dbcmd "github.com/dtnitsch/shipment-dossier/internal/db"
	manifestcmd "github.com/dtnitsch/shipment-dossier/internal/manifest"
	"github.com/dtnitsch/shipment-dossier/internal/merge"
	"github.com/dtnitsch/shipment-dossier/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "sdm",
		Usage: "assemble per-client shipment dossiers from loose shipping PDFs",
		Commands: []*cli.Command{
			{
				Name:   "merge",
				Usage:  "attribute pages to clients, merge dossiers, audit keywords, and optimize",
				Action: merge.MergeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input-folder",
						Aliases:  []string{"i"},
						Usage:    "folder containing the loose shipping PDFs",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "output-folder",
						Aliases:  []string{"o"},
						Usage:    "folder for merged dossiers and reports",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "edi-file",
						Usage: "EDI spreadsheet or CSV listing client references and names",
					},
					&cli.StringFlag{
						Name:  "manifest-file",
						Usage: "saved client mapping CSV (overrides the default location in the input folder)",
					},
					&cli.BoolFlag{
						Name:  "enable-optimization",
						Value: true,
						Usage: "compress merged dossiers after the keyword audit",
					},
					&cli.BoolFlag{
						Name:  "disable-optimization",
						Usage: "keep merged dossiers at their original size",
					},
					&cli.Float64Flag{
						Name:  "target-size",
						Value: 1.2,
						Usage: "skip optimization for files already under this size in MB",
					},
					&cli.IntFlag{
						Name:  "quality",
						Value: 85,
						Usage: "image quality to aim for when optimizing (0-100)",
					},
					&cli.StringFlag{
						Name:  "job-id",
						Usage: "caller-supplied identifier stamped on reports and the run ledger",
					},
					&cli.BoolFlag{
						Name:  "json-output",
						Usage: "print a single-line JSON result instead of the text summary",
					},
					&cli.StringFlag{
						Name:  "fields",
						Usage: "comma-separated JSON fields to include (requires --json-output)",
					},
					&cli.StringFlag{
						Name:  "rules",
						Usage: "YAML rules file overriding classification and audit defaults",
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "only log errors",
					},
				},
			},
			{
				Name:   "manifest",
				Usage:  "build and save the client manifest without merging",
				Action: manifestcmd.BuildAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input-folder",
						Aliases:  []string{"i"},
						Usage:    "folder containing the loose shipping PDFs",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "edi-file",
						Usage: "EDI spreadsheet or CSV listing client references and names",
					},
					&cli.StringFlag{
						Name:  "manifest-file",
						Usage: "saved client mapping CSV to fall back on",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "where to save the mapping CSV (defaults to the input folder)",
					},
					&cli.StringFlag{
						Name:  "rules",
						Usage: "YAML rules file overriding classification defaults",
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "only log errors",
					},
				},
			},
			{
				Name:   "audit",
				Usage:  "rescan merged dossiers for tax keywords and rewrite the alert report",
				Action: auditcmd.RescanAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "output-folder",
						Aliases:  []string{"o"},
						Usage:    "folder containing previously merged dossiers",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "job-id",
						Usage: "identifier stamped on the rewritten report",
					},
					&cli.StringFlag{
						Name:  "rules",
						Usage: "YAML rules file overriding the audit keyword list",
					},
					&cli.BoolFlag{
						Name:  "json-output",
						Usage: "print the alerts as JSON instead of the text summary",
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "only log errors",
					},
				},
			},
			{
				Name:  "db",
				Usage: "inspect the run ledger",
				Subcommands: []*cli.Command{
					{
						Name:   "runs",
						Usage:  "list recent runs",
						Action: dbcmd.RunsAction,
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "limit",
								Value: 20,
								Usage: "maximum number of runs to list",
							},
						},
					},
					{
						Name:      "run",
						Usage:     "show clients and alerts for a run (latest if omitted)",
						ArgsUsage: "[run_id]",
						Action:    dbcmd.RunAction,
					},
					{
						Name:      "summary",
						Usage:     "print a run artifact file (latest run if omitted)",
						ArgsUsage: "[run_id]",
						Action:    dbcmd.SummaryAction,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "file",
								Value: "summary",
								Usage: "artifact to print: summary, compression, or alerts",
							},
						},
					},
					{
						Name:   "query",
						Usage:  "filter runs by date, failures, or client",
						Action: dbcmd.QueryAction,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "today",
								Usage: "only runs created today",
							},
							&cli.BoolFlag{
								Name:  "failed",
								Usage: "only runs with failed clients",
							},
							&cli.StringFlag{
								Name:  "client",
								Usage: "substring match on client name or reference",
							},
						},
					},
					{
						Name:   "init",
						Usage:  "create the run ledger next to the binary",
						Action: dbcmd.InitAction,
					},
				},
			},
			{
				Name:  "workflow",
				Usage: "print the machine-readable workflow reference",
				Action: func(c *cli.Context) error {
					fmt.Print(help.WorkflowYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
