package main

import (
	"fmt"
	"strconv"
	"strings"

	"sidekick/internal/app"
	"sidekick/internal/csvimport"
	"sidekick/internal/datefmt"
	"sidekick/internal/sidekick"

	"github.com/spf13/cobra"
)

// task command
var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage the dashboard to-do list",
}

var taskAddCmd = &cobra.Command{
	Use:   "add TITLE...",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")
		return run("task add", []string{title}, func(a *app.SidekickApp) error {
			task, err := a.AddTask(cmd.Context(), title)
			if err != nil {
				return err
			}
			fmt.Printf("Added %s  %s\n", task.ID, task.Title)
			return nil
		})
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("task list", nil, func(a *app.SidekickApp) error {
			tasks := a.Tasks()
			if len(tasks) == 0 {
				fmt.Println("No tasks.")
				return nil
			}
			for _, t := range tasks {
				mark := " "
				if t.Done {
					mark = "x"
				}
				fmt.Printf("[%s] %s  %s\n", mark, t.ID, t.Title)
			}
			return nil
		})
	},
}

var taskToggleCmd = &cobra.Command{
	Use:   "toggle ID",
	Short: "Mark a task done or not done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("task toggle", args, func(a *app.SidekickApp) error {
			task, err := a.ToggleTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			state := "open"
			if task.Done {
				state = "done"
			}
			fmt.Printf("%s is %s\n", task.ID, state)
			return nil
		})
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("task rm", args, func(a *app.SidekickApp) error {
			return a.RemoveTask(cmd.Context(), args[0])
		})
	},
}

// track command
var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Manage the phonographic catalog",
}

var trackAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add a track",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		artist, _ := cmd.Flags().GetString("artist")
		role, _ := cmd.Flags().GetString("role")
		guests, _ := cmd.Flags().GetStringSlice("guest")
		isrc, _ := cmd.Flags().GetString("isrc")
		release, _ := cmd.Flags().GetString("release-date")
		selfProduced, _ := cmd.Flags().GetBool("self-produced")

		if release != "" && !datefmt.IsValidDisplayDate(release) {
			return fmt.Errorf("invalid release date %q, want DD/MM/YYYY", release)
		}
		r, err := sidekick.ParseRole(role)
		if err != nil {
			return err
		}

		return run("track add", args, func(a *app.SidekickApp) error {
			t, err := a.AddTrack(cmd.Context(), sidekick.Track{
				Title:        args[0],
				MainArtist:   artist,
				Role:         r,
				GuestArtists: guests,
				ISRC:         isrc,
				ReleaseDate:  release,
				SelfProduced: selfProduced,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added %s  %s\n", t.ID, t.Title)
			return nil
		})
	},
}

var trackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("track list", nil, func(a *app.SidekickApp) error {
			tracks := a.Tracks()
			if len(tracks) == 0 {
				fmt.Println("No tracks.")
				return nil
			}
			for _, t := range tracks {
				printTrack(t)
			}
			return nil
		})
	},
}

func printTrack(t sidekick.Track) {
	fmt.Printf("%s  %s  %s (%s)", t.ID, t.Title, t.MainArtist, sidekick.RoleLabel(t.Role))
	if len(t.GuestArtists) > 0 {
		fmt.Printf("  feat. %s", strings.Join(t.GuestArtists, ", "))
	}
	if t.ReleaseDate != "" {
		fmt.Printf("  %s", datefmt.Normalize(t.ReleaseDate))
	}
	fmt.Println()
}

var trackEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change fields of a track",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		title, _ := f.GetString("title")
		artist, _ := f.GetString("artist")
		role, _ := f.GetString("role")
		guests, _ := f.GetStringSlice("guest")
		isrc, _ := f.GetString("isrc")
		release, _ := f.GetString("release-date")
		selfProduced, _ := f.GetBool("self-produced")

		var r sidekick.Role
		if f.Changed("role") {
			var err error
			if r, err = sidekick.ParseRole(role); err != nil {
				return err
			}
		}
		if f.Changed("release-date") && release != "" && !datefmt.IsValidDisplayDate(release) {
			return fmt.Errorf("invalid release date %q, want DD/MM/YYYY", release)
		}
		if f.Changed("title") && strings.TrimSpace(title) == "" {
			return fmt.Errorf("track title is required")
		}

		return run("track edit", args, func(a *app.SidekickApp) error {
			t, err := a.EditTrack(cmd.Context(), args[0], func(t sidekick.Track) sidekick.Track {
				if f.Changed("title") {
					t.Title = strings.TrimSpace(title)
				}
				if f.Changed("artist") {
					t.MainArtist = artist
				}
				if f.Changed("role") {
					t.Role = r
				}
				if f.Changed("guest") {
					t.GuestArtists = guests
				}
				if f.Changed("isrc") {
					t.ISRC = isrc
				}
				if f.Changed("release-date") {
					t.ReleaseDate = release
				}
				if f.Changed("self-produced") {
					t.SelfProduced = selfProduced
				}
				return t
			})
			if err != nil {
				return err
			}
			printTrack(t)
			return nil
		})
	},
}

var trackRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a track",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("track rm", args, func(a *app.SidekickApp) error {
			return a.RemoveTrack(cmd.Context(), args[0])
		})
	},
}

// album command
var albumCmd = &cobra.Command{
	Use:   "album",
	Short: "Manage albums",
}

var albumAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add an album",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("type")
		release, _ := cmd.Flags().GetString("release-date")
		upc, _ := cmd.Flags().GetString("upc")

		if release != "" && !datefmt.IsValidDisplayDate(release) {
			return fmt.Errorf("invalid release date %q, want DD/MM/YYYY", release)
		}

		return run("album add", args, func(a *app.SidekickApp) error {
			al, err := a.AddAlbum(cmd.Context(), sidekick.Album{
				Title:       args[0],
				Type:        sidekick.AlbumType(kind),
				ReleaseDate: release,
				UPCEAN:      upc,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added %s  %s\n", al.ID, al.Title)
			return nil
		})
	},
}

var albumListCmd = &cobra.Command{
	Use:   "list",
	Short: "List albums and their tracks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("album list", nil, func(a *app.SidekickApp) error {
			albums := a.Albums()
			if len(albums) == 0 {
				fmt.Println("No albums.")
				return nil
			}
			for _, al := range albums {
				fmt.Printf("%s  %s  [%s]\n", al.ID, al.Title, sidekick.AlbumTypeLabel(al.Type))
				tracks, err := a.AlbumTracks(al.ID)
				if err != nil {
					return err
				}
				for i, t := range tracks {
					fmt.Printf("    %2d. %s\n", i+1, t.Title)
				}
			}
			return nil
		})
	},
}

var albumRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove an album, keeping its tracks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("album rm", args, func(a *app.SidekickApp) error {
			return a.RemoveAlbum(cmd.Context(), args[0])
		})
	},
}

var albumToggleTrackCmd = &cobra.Command{
	Use:   "toggle-track ALBUM_ID TRACK_ID",
	Short: "Add a track to an album, or remove it when present",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("album toggle-track", args, func(a *app.SidekickApp) error {
			al, err := a.ToggleAlbumTrack(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("%s has %d track(s)\n", al.ID, len(al.TrackIDs))
			return nil
		})
	},
}

// royalties command
var royaltiesCmd = &cobra.Command{
	Use:   "royalties",
	Short: "Import distributor statements",
}

var royaltiesImportCmd = &cobra.Command{
	Use:   "import DISTRIBUTOR FILE",
	Short: "Import a CSV statement (distrokid, tunecore, soundcloud, autres)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := csvimport.ParseDistributor(args[0])
		if err != nil {
			return err
		}
		return run("royalties import", args, func(a *app.SidekickApp) error {
			imp, err := a.ImportRoyaltiesFile(cmd.Context(), d, args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d row(s) from %s for %s\n", len(imp.Rows), imp.FileName, d.Name())
			return nil
		})
	},
}

var royaltiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the last import of each distributor",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("royalties list", nil, func(a *app.SidekickApp) error {
			imports := a.RoyaltyImports(cmd.Context())
			for _, d := range csvimport.Distributors {
				imp := imports[d]
				if imp == nil {
					fmt.Printf("%-18s  no import\n", d.Name())
					continue
				}
				fmt.Printf("%-18s  %s  %d row(s)  %s\n", d.Name(), imp.FileName, len(imp.Rows),
					imp.ImportedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}

// invoice command
var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Manage invoices",
}

var invoiceAddCmd = &cobra.Command{
	Use:   "add CLIENT",
	Short: "Add an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, _ := cmd.Flags().GetString("number")
		subject, _ := cmd.Flags().GetString("subject")
		amount, _ := cmd.Flags().GetString("amount")
		due, _ := cmd.Flags().GetString("due")

		if due != "" && !datefmt.IsValidDisplayDate(due) {
			return fmt.Errorf("invalid due date %q, want DD/MM/YYYY", due)
		}

		return run("invoice add", args, func(a *app.SidekickApp) error {
			inv, err := a.AddInvoice(cmd.Context(), sidekick.Invoice{
				Client:  args[0],
				Number:  number,
				Subject: subject,
				Amount:  amount,
				DueDate: due,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added invoice %s  %s  %s €\n", inv.Number, inv.Client, inv.Amount)
			return nil
		})
	},
}

var invoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("invoice list", nil, func(a *app.SidekickApp) error {
			invoices := a.Invoices(cmd.Context())
			if len(invoices) == 0 {
				fmt.Println("No invoices.")
				return nil
			}
			now := a.Now()
			for _, inv := range invoices {
				flag := ""
				if sidekick.IsOverdue(inv, now) {
					flag = "  [overdue]"
				}
				fmt.Printf("#%d  %s  %-20s  %10s €  %-10s  %s%s\n",
					inv.ID, inv.Number, inv.Client, inv.Amount, inv.Status, inv.DueDate, flag)
			}
			return nil
		})
	},
}

var invoicePaidCmd = &cobra.Command{
	Use:   "paid ID",
	Short: "Mark an invoice as paid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("invoice", args[0])
		if err != nil {
			return err
		}
		return run("invoice paid", args, func(a *app.SidekickApp) error {
			return a.MarkInvoicePaid(cmd.Context(), id)
		})
	},
}

// contact command
var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage contacts",
}

var contactAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		city, _ := cmd.Flags().GetString("city")
		email, _ := cmd.Flags().GetString("email")
		phone, _ := cmd.Flags().GetString("phone")
		notes, _ := cmd.Flags().GetString("notes")

		return run("contact add", args, func(a *app.SidekickApp) error {
			c, err := a.AddContact(cmd.Context(), sidekick.ContactRecord{
				Name:  args[0],
				Role:  role,
				City:  city,
				Email: email,
				Phone: phone,
				Notes: notes,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added #%d  %s\n", c.ID, c.Name)
			return nil
		})
	},
}

var contactRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("contact", args[0])
		if err != nil {
			return err
		}
		return run("contact rm", args, func(a *app.SidekickApp) error {
			return a.RemoveContact(cmd.Context(), id)
		})
	},
}

var contactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("contact list", nil, func(a *app.SidekickApp) error {
			contacts := a.Contacts(cmd.Context())
			if len(contacts) == 0 {
				fmt.Println("No contacts.")
				return nil
			}
			for _, c := range contacts {
				fmt.Printf("#%d  %-24s  %-24s  %s  %s\n", c.ID, c.Name, c.Role, c.City, c.Email)
			}
			return nil
		})
	},
}

// prospect command
var prospectCmd = &cobra.Command{
	Use:   "prospect",
	Short: "Track venue prospection",
}

var prospectAddCmd = &cobra.Command{
	Use:   "add VENUE",
	Short: "Add a venue to prospect",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		city, _ := cmd.Flags().GetString("city")
		contact, _ := cmd.Flags().GetString("contact")
		email, _ := cmd.Flags().GetString("email")
		phone, _ := cmd.Flags().GetString("phone")
		notes, _ := cmd.Flags().GetString("notes")

		return run("prospect add", args, func(a *app.SidekickApp) error {
			entry, err := a.AddProspect(cmd.Context(), sidekick.ProspectionEntry{
				VenueName: args[0],
				City:      city,
				Contact:   contact,
				Email:     email,
				Phone:     phone,
				Notes:     notes,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added #%d  %s\n", entry.ID, entry.VenueName)
			return nil
		})
	},
}

var prospectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List prospected venues",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("prospect list", nil, func(a *app.SidekickApp) error {
			entries := a.Prospects(cmd.Context())
			if len(entries) == 0 {
				fmt.Println("No prospection.")
				return nil
			}
			for _, e := range entries {
				fmt.Printf("#%d  %-24s  %-12s  %-16s  %s\n", e.ID, e.VenueName, e.City, e.Status, e.Contact)
			}
			return nil
		})
	},
}

func addModuleCommands() {
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskToggleCmd, taskRmCmd)

	trackCmd.AddCommand(trackAddCmd, trackListCmd, trackEditCmd, trackRmCmd)
	for _, c := range []*cobra.Command{trackAddCmd, trackEditCmd} {
		c.Flags().String("artist", "", "Main artist")
		c.Flags().String("role", string(sidekick.RoleMainArtist), "Role on the track")
		c.Flags().StringSlice("guest", nil, "Guest artists")
		c.Flags().String("isrc", "", "ISRC code")
		c.Flags().String("release-date", "", "Release date as DD/MM/YYYY")
		c.Flags().Bool("self-produced", false, "Self-produced track")
	}
	trackEditCmd.Flags().String("title", "", "Title")

	albumCmd.AddCommand(albumAddCmd, albumListCmd, albumRmCmd, albumToggleTrackCmd)
	albumAddCmd.Flags().String("type", string(sidekick.AlbumTypeAlbum), "album, ep or single")
	albumAddCmd.Flags().String("release-date", "", "Release date as DD/MM/YYYY")
	albumAddCmd.Flags().String("upc", "", "UPC/EAN code")

	royaltiesCmd.AddCommand(royaltiesImportCmd, royaltiesListCmd)

	invoiceCmd.AddCommand(invoiceAddCmd, invoiceListCmd, invoicePaidCmd)
	invoiceAddCmd.Flags().String("number", "", "Invoice number (default: next FAC-YYYY-NNN)")
	invoiceAddCmd.Flags().String("subject", "", "Subject")
	invoiceAddCmd.Flags().String("amount", "", "Amount, e.g. 1200,00")
	invoiceAddCmd.Flags().String("due", "", "Due date as DD/MM/YYYY")

	contactCmd.AddCommand(contactAddCmd, contactListCmd, contactRmCmd)
	contactAddCmd.Flags().String("role", "", "Role, e.g. Programmateur de salle")
	contactAddCmd.Flags().String("city", "", "City")
	contactAddCmd.Flags().String("email", "", "Email")
	contactAddCmd.Flags().String("phone", "", "Phone")
	contactAddCmd.Flags().String("notes", "", "Notes")

	prospectCmd.AddCommand(prospectAddCmd, prospectListCmd)
	prospectAddCmd.Flags().String("city", "", "City")
	prospectAddCmd.Flags().String("contact", "", "Contact person; added to contacts when new")
	prospectAddCmd.Flags().String("email", "", "Contact email")
	prospectAddCmd.Flags().String("phone", "", "Contact phone")
	prospectAddCmd.Flags().String("notes", "", "Notes")

	rootCmd.AddCommand(taskCmd, trackCmd, albumCmd, royaltiesCmd, invoiceCmd, contactCmd, prospectCmd)
	addLiveCommands()
}

// parseID reads a numeric record id.
func parseID(what, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, s)
	}
	return id, nil
}
