package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/emrgen/prd"
	"github.com/emrgen/prd/internal/identity"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configDir      = "./.tmp"
	configFileName = "prd"
	defaultServer  = "localhost:4020"
)

var contextCommand = &cobra.Command{
	Use:   "context",
	Short: "context commands",
}

func init() {
	contextCommand.AddCommand(setContextCommand())
	contextCommand.AddCommand(currentContextCommand())
	contextCommand.AddCommand(resetContextCommand())
}

// Context is the cli state kept in ./.tmp/prd.yml.
type Context struct {
	Token  string `mapstructure:"token"`
	Server string `mapstructure:"server"`
}

func setContextCommand() *cobra.Command {
	var token string
	var subject string
	var secret string
	var serverAddr string
	command := &cobra.Command{
		Use:     "set",
		Short:   "set context",
		Example: "prd context set -t <token>\nprd context set --subject <user-id> --secret <jwt-secret>",
		Run: func(cmd *cobra.Command, args []string) {
			if token == "" && (subject == "" || secret == "") {
				color.Red(`missing: --token or --subject and --secret`)
				return
			}

			if token == "" {
				issued, err := identity.NewJWTVerifier(secret).IssueToken(subject, 24*time.Hour)
				if err != nil {
					color.Red("error issuing token: %v", err)
					return
				}
				token = issued
			}

			if err := writeContext(Context{Token: token, Server: serverAddr}); err != nil {
				color.Red("error writing config file: %v", err)
				return
			}
			color.Green("context saved")
		},
	}

	command.Flags().StringVarP(&token, "token", "t", "", "bearer token")
	command.Flags().StringVar(&subject, "subject", "", "issue a token for this user id")
	command.Flags().StringVar(&secret, "secret", "", "secret the server verifies tokens with")
	command.Flags().StringVar(&serverAddr, "server", defaultServer, "grpc server address")
	command.Flags().SortFlags = false

	return command
}

func currentContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "current",
		Short: "current context",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := readContext()
			printField("Server", ctx.Server)
			if ctx.Token == "" {
				printField("Token", "<none>")
				return
			}
			printField("Token", ctx.Token)
		},
	}

	return command
}

func resetContextCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "reset",
		Short: "reset context",
		Run: func(cmd *cobra.Command, args []string) {
			if err := writeContext(Context{Server: defaultServer}); err != nil {
				color.Red("error writing config file: %v", err)
				return
			}
			color.Green("context reset")
		},
	}

	return command
}

func configViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(configFileName)
	v.AddConfigPath(configDir)
	v.SetConfigType("yml")
	return v
}

func writeContext(ctx Context) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	v := configViper()
	v.Set("context.token", ctx.Token)
	v.Set("context.server", ctx.Server)

	return v.WriteConfigAs(filepath.Join(configDir, configFileName+".yml"))
}

func readContext() Context {
	ctx := Context{Server: defaultServer}

	v := configViper()
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Println("error reading config file: ", err)
		}
		return ctx
	}

	if err := v.UnmarshalKey("context", &ctx); err != nil {
		fmt.Println("error unmarshalling config file: ", err)
	}
	if ctx.Server == "" {
		ctx.Server = defaultServer
	}

	return ctx
}

// dial connects to the server of the current context. The returned context
// carries the saved token.
func dial() (prd.Client, context.Context, error) {
	cfg := readContext()

	client, err := prd.NewClient(cfg.Server)
	if err != nil {
		return nil, nil, err
	}

	ctx := context.Background()
	if cfg.Token != "" {
		ctx = prd.WithToken(ctx, cfg.Token)
	}

	return client, ctx, nil
}
