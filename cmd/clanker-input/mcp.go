package main

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ziggle-dev/clanker-input/internal/mcpserver"
)

// serveFunc runs a built server. Tests swap it to avoid blocking on stdio.
type serveFunc func(ctx context.Context, srv *mcpserver.Server, transport, addr, baseURL string) error

func newMCPCmd(a *app) *cobra.Command {
	var (
		transport string
		host      string
		port      int
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the user_input tool over MCP",
		Long: `Start a Model Context Protocol server exposing the user_input tool.

With the stdio transport the server talks on stdin and stdout, which is what
MCP clients launching a local command expect. The sse transport serves HTTP
on --host and --port, along with /metrics and /healthz.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if transport != "stdio" && transport != "sse" {
				return fmt.Errorf("invalid --transport %q (must be stdio or sse)", transport)
			}

			svc, _, log, m, err := a.setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			srv := mcpserver.New(svc, version, log, m)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			addr := net.JoinHostPort(host, strconv.Itoa(port))
			baseURL := "http://" + addr
			serve := a.serve
			if serve == nil {
				serve = serveMCP
			}
			return serve(ctx, srv, transport, addr, baseURL)
		},
	}

	cmd.Flags().StringVarP(&transport, "transport", "t", "stdio", "Transport (stdio, sse)")
	cmd.Flags().StringVar(&host, "host", "localhost", "Host for the sse transport")
	cmd.Flags().IntVar(&port, "port", 8080, "Port for the sse transport")
	return cmd
}

func serveMCP(ctx context.Context, srv *mcpserver.Server, transport, addr, baseURL string) error {
	if transport == "sse" {
		return srv.ServeSSE(ctx, addr, baseURL)
	}
	return srv.ServeStdio()
}
