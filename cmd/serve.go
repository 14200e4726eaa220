package cmd

import (
	"github.com/emrgen/prd/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var grpcPort string
	var httpPort string

	command := &cobra.Command{
		Use:   "serve",
		Short: "start the grpc and rest servers",
		Run: func(cmd *cobra.Command, args []string) {
			server.NewServer(grpcPort, httpPort).Start()
		},
	}

	command.Flags().StringVar(&grpcPort, "grpc-port", "", "grpc port (default GRPC_PORT or 4020)")
	command.Flags().StringVar(&httpPort, "http-port", "", "rest port (default HTTP_PORT or 4021)")

	return command
}
