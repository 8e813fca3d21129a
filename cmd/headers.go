package cmd

import (
	"fmt"
	"log"

	"devserver/core/config"
	"devserver/core/middleware/secheaders"
	"devserver/core/server"

	"github.com/spf13/cobra"
)

var headersFlags struct {
	isolated bool
	coep     string
}

// headersCmd prints the header set the server would attach to responses,
// which is handy when debugging browser isolation requirements.
var headersCmd = &cobra.Command{
	Use:   "headers",
	Short: "Print the response headers the server would send",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if cmd.Flags().Changed("isolated") {
			cfg.Server.Isolated = headersFlags.isolated
		}
		if cmd.Flags().Changed("coep") {
			cfg.Server.EmbedderPolicy = headersFlags.coep
		}
		if !cfg.Server.IsValidEmbedderPolicy() {
			log.Fatalf("Invalid embedder policy %q (want %s or %s)",
				cfg.Server.EmbedderPolicy, server.EmbedderRequireCorp, server.EmbedderCredentialless)
		}

		for _, h := range secheaders.Compute(secheaders.Config{
			Isolated:       cfg.Server.Isolated,
			EmbedderPolicy: cfg.Server.EmbedderPolicy,
		}) {
			fmt.Printf("%s: %s\n", h.Name, h.Value)
		}
	},
}

func init() {
	headersCmd.Flags().BoolVar(&headersFlags.isolated, "isolated", false, "enable COOP/COEP (crossOriginIsolated) headers")
	headersCmd.Flags().StringVar(&headersFlags.coep, "coep", server.EmbedderCredentialless, "COEP policy when isolated (require-corp, credentialless)")
	RootCmd.AddCommand(headersCmd)
}
