package main

import (
	"fmt"

	"github.com/panbanda/statcalc/internal/mcpserver"
	"github.com/urfave/cli/v2"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes statcalc
as tools that LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "statcalc": {
        "command": "statcalc",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - compute_statistics  Statistics for an inline list of numbers
  - describe_file       Statistics for one column of a file
  - list_columns        Columns of a file and which are numeric
  - describe_batch      Statistics for the same column across many files`,
		Action: runMCPCmd,
		Subcommands: []*cli.Command{
			{
				Name:   "manifest",
				Usage:  "Print the MCP registry manifest (server.json)",
				Action: runMCPManifestCmd,
			},
		},
	}
}

func runMCPCmd(c *cli.Context) error {
	svc, _, err := newService(c)
	if err != nil {
		return err
	}
	server := mcpserver.NewServer(version, svc)
	return server.Run(c.Context)
}

func runMCPManifestCmd(c *cli.Context) error {
	data, err := mcpserver.GenerateManifest(version)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(data))
	return err
}
