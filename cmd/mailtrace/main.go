package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/mailtrace/internal/columns"
	"github.com/mailtrace/internal/config"
	"github.com/mailtrace/internal/engine"
	"github.com/mailtrace/internal/export"
	"github.com/mailtrace/internal/store"
	"github.com/mailtrace/internal/web"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Printf("env load: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "mailtrace",
		Short: "Mail campaign to CRM attribution",
		Long:  `Matches mail campaign recipient lists against CRM job records by normalized address and reports attribution statistics`,
	}

	rootCmd.AddCommand(createMatchCmd())
	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createPingCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// createMatchCmd creates the batch matching subcommand
func createMatchCmd() *cobra.Command {
	var (
		mailPath    string
		crmPath     string
		mappingPath string
		mode        string
		fuzzy       bool
		workers     int
		outPath     string
		jsonOut     bool
		save        bool
		debugFlag   bool
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match a mail list CSV against a CRM export CSV",
		Run: func(cmd *cobra.Command, args []string) {
			mailText, err := os.ReadFile(mailPath)
			if err != nil {
				log.Fatalf("Failed to read mail file: %v", err)
			}
			crmText, err := os.ReadFile(crmPath)
			if err != nil {
				log.Fatalf("Failed to read CRM file: %v", err)
			}

			var mapping *columns.Mapping
			if mappingPath != "" {
				mapping, err = columns.LoadMappingFile(mappingPath)
				if err != nil {
					log.Fatalf("Failed to load mapping: %v", err)
				}
			}

			opts := engine.DefaultOptions()
			opts.FuzzyEnabled = fuzzy
			opts.Debug = debugFlag || config.GetEnvBool("MAILTRACE_DEBUG", false)
			if workers > 0 {
				opts.Workers = workers
			}
			if mode != "" {
				opts.Mode, err = engine.ParseMode(mode)
				if err != nil {
					log.Fatalf("%v", err)
				}
			}

			res, err := engine.Run(string(mailText), string(crmText), mapping, opts)
			if err != nil {
				if mre, ok := err.(*columns.MappingRequiredError); ok {
					reportMappingRequired(mre)
					os.Exit(2)
				}
				log.Fatalf("Match failed: %v", err)
			}

			if save {
				st, err := store.Open()
				if err != nil {
					log.Fatalf("Failed to open store: %v", err)
				}
				defer st.Close()
				if err := st.EnsureSchema(); err != nil {
					log.Fatalf("%v", err)
				}
				runID, err := st.SaveRun(res, opts)
				if err != nil {
					log.Fatalf("Failed to save run: %v", err)
				}
				fmt.Printf("Saved run %d\n", runID)
			}

			if outPath != "" {
				if err := export.WriteMatchesFile(outPath, res.Matches); err != nil {
					log.Fatalf("Failed to write matches: %v", err)
				}
				fmt.Printf("Wrote %d matches to %s\n", len(res.Matches), outPath)
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					log.Fatalf("Failed to encode result: %v", err)
				}
				return
			}
			printSummary(res)
		},
	}

	cmd.Flags().StringVar(&mailPath, "mail", "", "mail list CSV file (required)")
	cmd.Flags().StringVar(&crmPath, "crm", "", "CRM export CSV file (required)")
	cmd.Flags().StringVar(&mappingPath, "mapping", "", "column mapping YAML file")
	cmd.Flags().StringVar(&mode, "mode", "standard", "fuzzy mode: strict, standard or loose")
	cmd.Flags().BoolVar(&fuzzy, "fuzzy", true, "enable fuzzy street fallback")
	cmd.Flags().IntVar(&workers, "workers", 0, "matching workers (0 = sequential)")
	cmd.Flags().StringVar(&outPath, "out", "", "write matches CSV to this path")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the full result as JSON")
	cmd.Flags().BoolVar(&save, "save", false, "persist the run to Postgres")
	cmd.Flags().BoolVar(&debugFlag, "debug", false, "enable debug tracing")
	cmd.MarkFlagRequired("mail")
	cmd.MarkFlagRequired("crm")

	return cmd
}

func reportMappingRequired(mre *columns.MappingRequiredError) {
	fmt.Println("Column mapping required: the address column could not be identified.")
	fmt.Printf("  Mail headers: %v\n", mre.MailHeaders)
	fmt.Printf("  CRM headers:  %v\n", mre.CRMHeaders)
	fmt.Println("Write a mapping YAML and pass it with --mapping, for example:")
	fmt.Println("  mail:")
	fmt.Println("    address1: <mail column>")
	fmt.Println("  crm:")
	fmt.Println("    address1: <crm column>")
}

func printSummary(res *engine.Result) {
	k := res.Stats.KPIs
	fmt.Printf("Mail rows:      %d (%d unique addresses)\n", k.MailCount, k.UniqueMailAddresses)
	fmt.Printf("CRM rows:       %d\n", k.CRMCount)
	fmt.Printf("Matches:        %d (%.1f%% of mail)\n", k.MatchCount, k.MatchRate)
	fmt.Printf("Revenue:        $%.2f\n", k.Revenue)
	if k.MatchCount > 0 {
		fmt.Printf("Avg ticket:     $%.2f\n", k.AvgTicket)
		fmt.Printf("Median days:    %d\n", k.MedianDaysToConvert)
		fmt.Printf("Within 30/60/90: %d%% / %d%% / %d%%\n",
			k.ConvertedWithin30, k.ConvertedWithin60, k.ConvertedWithin90)
	}
}

// createServeCmd creates the API server subcommand
func createServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Run: func(cmd *cobra.Command, args []string) {
			var cfg *web.Config
			var err error
			if configPath != "" {
				cfg, err = web.LoadConfig(configPath)
				if err != nil {
					log.Fatalf("Failed to load config: %v", err)
				}
			} else {
				cfg = web.DefaultConfig()
			}

			server, err := web.NewServer(cfg)
			if err != nil {
				log.Fatalf("Failed to create server: %v", err)
			}
			if err := server.Start(); err != nil {
				log.Fatalf("Server error: %v", err)
			}
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "server config JSON file")
	return cmd
}

// createPingCmd creates a command to test database connectivity
func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test database connectivity",
		Run: func(cmd *cobra.Command, args []string) {
			st, err := store.Open()
			if err != nil {
				log.Fatalf("Failed to connect to database: %v", err)
			}
			defer st.Close()
			fmt.Println("Database connection successful!")

			var count int
			err = st.DB.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
			if err != nil {
				log.Printf("Error counting runs: %v", err)
			} else {
				fmt.Printf("Runs stored: %d\n", count)
			}
		},
	}
}
