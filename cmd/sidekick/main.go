package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"sidekick/internal/app"
	"sidekick/internal/calendar"
	"sidekick/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// userFlag is the persistent --user value.
var userFlag string

// newApp reads the config and creates a SidekickApp signed in as the
// selected user. The caller must defer a.Close().
// operation identifies the CLI command being run (e.g. "task add").
func newApp(operation string, params ...string) (*app.SidekickApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	userID := userFlag
	if userID == "" {
		userID = defaults["user"]
	}

	a, err := app.NewSidekickApp(rootCmd.Context(), cfg, app.Options{
		Operation: operation,
		Params:    params,
		UserID:    userID,
		Passphrase: func() (string, error) {
			return promptPassphrase(os.Stderr, "Passphrase: ")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

// run opens the app for operation, calls fn and closes the app, marking the
// operation failed when fn returns an error.
func run(operation string, params []string, fn func(a *app.SidekickApp) error) error {
	a, err := newApp(operation, params...)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := fn(a); err != nil {
		a.Fail()
		return err
	}
	if !a.Durable() {
		fmt.Fprintln(os.Stderr, "warning: data could not be saved to storage and is kept in memory only")
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "sidekick",
	Short: "Personal assistant for independent musicians",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		userID := userFlag
		if userID == "" {
			userID = defaults["user"]
		}

		cfg := config.NewConfig(userID, defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("User:     %s\n", displayUser(userID))
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("User:        %s\n", displayUser(cfg.UserID))
		fmt.Printf("Single user: %t\n", cfg.SingleUser)
		fmt.Printf("Base Dir:    %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:     %s\n", cfg.LogDir)
		fmt.Printf("Storage:     %s\n", cfg.Storage.Type)
		if cfg.Storage.CacheTTL != "" {
			fmt.Printf("Cache TTL:   %s\n", cfg.Storage.CacheTTL)
		}
		fmt.Printf("Encryption:  %t\n", cfg.Encryption.Enabled)
		return nil
	},
}

func displayUser(id string) string {
	if id == "" {
		return "(guest)"
	}
	return id
}

// keys command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage encryption keys",
}

var keysInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate the encryption key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}
		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		pass, err := newPassphrase(os.Stderr)
		if err != nil {
			return err
		}
		if err := app.SetupKeys(cfg, pass); err != nil {
			return err
		}

		fmt.Printf("Public key:  %s\n", cfg.Encryption.PublicKeyPath)
		fmt.Printf("Private key: %s\n", cfg.Encryption.PrivateKeyPath)
		if !cfg.Encryption.Enabled {
			fmt.Println("Set enabled = true under [encryption] to encrypt stored data.")
		}
		return nil
	},
}

// reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all data of the current user",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(os.Stdin, os.Stdout, "Delete all data? This cannot be undone.") {
			fmt.Println("Aborted.")
			return nil
		}
		return run("reset", nil, func(a *app.SidekickApp) error {
			if err := a.Reset(cmd.Context()); err != nil {
				return fmt.Errorf("reset failed: %w", err)
			}
			fmt.Println("All data deleted.")
			return nil
		})
	},
}

// calendar command
var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show the month calendar across modules",
	RunE: func(cmd *cobra.Command, args []string) error {
		month, _ := cmd.Flags().GetString("month")
		sectorNames, _ := cmd.Flags().GetStringSlice("sector")
		upcoming, _ := cmd.Flags().GetInt("upcoming")

		var sectors []calendar.Sector
		for _, name := range sectorNames {
			s, err := calendar.ParseSector(name)
			if err != nil {
				return err
			}
			sectors = append(sectors, s)
		}

		return run("calendar", append([]string{month}, sectorNames...), func(a *app.SidekickApp) error {
			events := a.CalendarEvents(cmd.Context(), sectors...)
			if upcoming > 0 {
				for _, ev := range calendar.Upcoming(events, upcoming) {
					printEvent(ev)
				}
				return nil
			}

			year, mon := a.Now().Year(), a.Now().Month()
			if month != "" {
				t, err := parseMonth(month)
				if err != nil {
					return err
				}
				year, mon = t.Year(), t.Month()
			}
			printMonth(year, mon, calendar.InMonth(events, year, mon))
			return nil
		})
	},
}

// parseMonth reads a YYYY-MM flag value.
func parseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, want YYYY-MM", s)
	}
	return t, nil
}

func printMonth(year int, month time.Month, events []calendar.Event) {
	byDay := calendar.ByDay(events)

	fmt.Printf("%s %d\n", month, year)
	fmt.Println(strings.Join(calendar.Weekdays[:], " "))
	for _, week := range calendar.MonthMatrix(year, month) {
		cells := make([]string, len(week))
		for i, day := range week {
			switch {
			case day == 0:
				cells[i] = "   "
			case len(byDay[fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)]) > 0:
				cells[i] = fmt.Sprintf("%2d*", day)
			default:
				cells[i] = fmt.Sprintf("%2d ", day)
			}
		}
		fmt.Println(strings.Join(cells, " "))
	}

	if len(events) == 0 {
		fmt.Println("\nNo events.")
		return
	}
	fmt.Println()
	sorted := append([]calendar.Event(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DateKey < sorted[j].DateKey })
	for _, ev := range sorted {
		printEvent(ev)
	}
}

func printEvent(ev calendar.Event) {
	past := ""
	if ev.IsPast {
		past = "  [past]"
	}
	fmt.Printf("%s  %-8s %-18s %s%s\n", ev.DateKey, ev.Sector.Label(), ev.SubLabel, ev.Label, past)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "User whose data is opened (default: config user_id or $SIDEKICK_USER)")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// keys subcommands
	keysCmd.AddCommand(keysInitCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().String("month", "", "Month to show as YYYY-MM (default: current month)")
	calendarCmd.Flags().StringSlice("sector", nil, "Only show these sectors (live, revenus, phono)")
	calendarCmd.Flags().IntP("upcoming", "n", 0, "List the next N events instead of a month")

	addModuleCommands()
}
