package main

import (
	"os"

	"github.com/emrgen/prd/internal/server"
	"github.com/sirupsen/logrus"
)

// debug runs the server against a local sqlite database, trusting bearer
// tokens as user ids.
func main() {
	defaults := map[string]string{
		"AUTH_MODE":       "insecure",
		"DATABASE_DRIVER": "sqlite",
		"DATABASE_URL":    ".tmp/db/debug.db",
		"LOG_LEVEL":       "debug",
	}
	for key, value := range defaults {
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}

	if err := server.Start(os.Getenv("GRPC_PORT"), os.Getenv("HTTP_PORT")); err != nil {
		logrus.Fatal(err)
	}
}
