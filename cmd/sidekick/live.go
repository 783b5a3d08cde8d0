package main

import (
	"fmt"
	"strings"

	"sidekick/internal/app"
	"sidekick/internal/sidekick"

	"github.com/spf13/cobra"
)

// gig command
var gigCmd = &cobra.Command{
	Use:   "gig",
	Short: "Manage concert dates",
}

var gigAddCmd = &cobra.Command{
	Use:   "add VENUE",
	Short: "Add a concert date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		city, _ := cmd.Flags().GetString("city")
		date, _ := cmd.Flags().GetString("date")
		address, _ := cmd.Flags().GetString("address")
		status, _ := cmd.Flags().GetString("status")
		note, _ := cmd.Flags().GetString("note")

		return run("gig add", args, func(a *app.SidekickApp) error {
			rep, err := a.AddGig(cmd.Context(), sidekick.Representation{
				Venue:   args[0],
				City:    city,
				Date:    date,
				Address: address,
				Status:  sidekick.TourStatus(status),
				Note:    note,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added #%d  %s  %s\n", rep.ID, rep.Date, rep.Venue)
			return nil
		})
	},
}

var gigListCmd = &cobra.Command{
	Use:   "list",
	Short: "List concert dates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("gig list", nil, func(a *app.SidekickApp) error {
			gigs := a.Gigs(cmd.Context())
			if len(gigs) == 0 {
				fmt.Println("No gigs.")
				return nil
			}
			for _, g := range gigs {
				fmt.Printf("#%d  %s  %-24s  %-12s  %s\n", g.ID, g.Date, g.Venue, g.City, g.Status)
			}
			return nil
		})
	},
}

var gigShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a concert date with its logistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("gig", args[0])
		if err != nil {
			return err
		}
		return run("gig show", args, func(a *app.SidekickApp) error {
			d, err := a.Gig(cmd.Context(), id)
			if err != nil {
				return err
			}
			printGig(d)
			return nil
		})
	},
}

func printGig(d app.GigDetails) {
	g := d.Gig
	fmt.Printf("#%d  %s  %s, %s  (%s)\n", g.ID, g.Date, g.Venue, g.City, g.Status)
	if g.Address != "" {
		fmt.Printf("  %s\n", g.Address)
	}
	for _, t := range d.Timetable {
		fmt.Printf("  %-5s  %s\n", t.Time, t.Activity)
	}
	for _, t := range d.Transports {
		fmt.Printf("  transport #%d  %s  %s  %s  %s\n", t.ID, t.Type, t.Amount, t.PaymentMode, t.Details)
	}
	for _, l := range d.Lodgings {
		fmt.Printf("  lodging #%d  %s  %s night(s)  %s  %s  %s\n", l.ID, l.Type, l.Nights, l.Amount, l.PaymentMode, l.Details)
	}
	for _, doc := range d.Documents {
		fmt.Printf("  document #%d  %s  %s\n", doc.ID, doc.Type, doc.Note)
	}
	if d.Material != nil {
		fmt.Printf("  material: %s\n", d.Material.Name)
		printItems(d.MaterialItems, "    ")
	}
}

var gigRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a concert date and its logistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("gig", args[0])
		if err != nil {
			return err
		}
		return run("gig rm", args, func(a *app.SidekickApp) error {
			return a.RemoveGig(cmd.Context(), id)
		})
	},
}

var gigMaterialCmd = &cobra.Command{
	Use:   "material GIG_ID [LIST_ID]",
	Short: "Assign a material list to a gig, or clear it",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		gigID, err := parseID("gig", args[0])
		if err != nil {
			return err
		}
		var listID int64
		if len(args) == 2 {
			if listID, err = parseID("material list", args[1]); err != nil {
				return err
			}
		}
		return run("gig material", args, func(a *app.SidekickApp) error {
			return a.AssignGigMaterial(cmd.Context(), gigID, listID)
		})
	},
}

var gigTransportCmd = &cobra.Command{
	Use:   "transport GIG_ID",
	Short: "Record a transport for a gig",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gigID, err := parseID("gig", args[0])
		if err != nil {
			return err
		}
		kind, _ := cmd.Flags().GetString("type")
		amount, _ := cmd.Flags().GetString("amount")
		payment, _ := cmd.Flags().GetString("payment")
		details, _ := cmd.Flags().GetString("details")

		return run("gig transport", args, func(a *app.SidekickApp) error {
			t, err := a.AddTransport(cmd.Context(), gigID, sidekick.TransportEntry{
				Type:        kind,
				Amount:      amount,
				PaymentMode: sidekick.PaymentMode(payment),
				Details:     details,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added transport #%d  %s  %s\n", t.ID, t.Type, t.Amount)
			return nil
		})
	},
}

var gigLodgingCmd = &cobra.Command{
	Use:   "lodging GIG_ID",
	Short: "Record a lodging for a gig",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gigID, err := parseID("gig", args[0])
		if err != nil {
			return err
		}
		kind, _ := cmd.Flags().GetString("type")
		nights, _ := cmd.Flags().GetString("nights")
		amount, _ := cmd.Flags().GetString("amount")
		payment, _ := cmd.Flags().GetString("payment")
		details, _ := cmd.Flags().GetString("details")

		return run("gig lodging", args, func(a *app.SidekickApp) error {
			l, err := a.AddLodging(cmd.Context(), gigID, sidekick.LodgingEntry{
				Type:        kind,
				Nights:      nights,
				Amount:      amount,
				PaymentMode: sidekick.PaymentMode(payment),
				Details:     details,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added lodging #%d  %s  %s night(s)\n", l.ID, l.Type, l.Nights)
			return nil
		})
	},
}

var gigDocumentCmd = &cobra.Command{
	Use:   "document GIG_ID NOTE...",
	Short: "Record a document note for a gig",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		gigID, err := parseID("gig", args[0])
		if err != nil {
			return err
		}
		kind, _ := cmd.Flags().GetString("type")
		note := strings.Join(args[1:], " ")

		return run("gig document", args, func(a *app.SidekickApp) error {
			d, err := a.AddTourDocument(cmd.Context(), gigID, sidekick.TourDocumentEntry{Type: kind, Note: note})
			if err != nil {
				return err
			}
			fmt.Printf("Added document #%d  %s\n", d.ID, d.Type)
			return nil
		})
	},
}

var gigTimetableCmd = &cobra.Command{
	Use:   "timetable GIG_ID [HH:MM=ACTIVITY]...",
	Short: "Replace the timetable of a gig",
	Long:  "Replace the timetable of a gig. Each entry is TIME=ACTIVITY; no entries clears it.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gigID, err := parseID("gig", args[0])
		if err != nil {
			return err
		}
		items, err := parseTimetable(args[1:])
		if err != nil {
			return err
		}
		return run("gig timetable", args, func(a *app.SidekickApp) error {
			return a.SetTimetable(cmd.Context(), gigID, items)
		})
	},
}

// parseTimetable reads TIME=ACTIVITY pairs.
func parseTimetable(args []string) ([]sidekick.TimetableItem, error) {
	items := make([]sidekick.TimetableItem, 0, len(args))
	for _, arg := range args {
		tm, activity, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid timetable entry %q, want TIME=ACTIVITY", arg)
		}
		items = append(items, sidekick.TimetableItem{
			Time:     strings.TrimSpace(tm),
			Activity: strings.TrimSpace(activity),
		})
	}
	return items, nil
}

// rehearsal command
var rehearsalCmd = &cobra.Command{
	Use:   "rehearsal",
	Short: "Manage rehearsals",
}

var rehearsalAddCmd = &cobra.Command{
	Use:   "add LOCATION",
	Short: "Add a rehearsal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label, _ := cmd.Flags().GetString("label")
		date, _ := cmd.Flags().GetString("date")
		tm, _ := cmd.Flags().GetString("time")
		address, _ := cmd.Flags().GetString("address")
		note, _ := cmd.Flags().GetString("note")

		return run("rehearsal add", args, func(a *app.SidekickApp) error {
			r, err := a.AddRehearsal(cmd.Context(), sidekick.RehearsalRecord{
				Label:    label,
				Date:     date,
				Time:     tm,
				Location: args[0],
				Address:  address,
				Note:     note,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added #%d  %s %s  %s\n", r.ID, r.Date, r.Time, r.Location)
			return nil
		})
	},
}

var rehearsalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rehearsals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("rehearsal list", nil, func(a *app.SidekickApp) error {
			rehearsals := a.Rehearsals(cmd.Context())
			if len(rehearsals) == 0 {
				fmt.Println("No rehearsals.")
				return nil
			}
			for _, r := range rehearsals {
				fmt.Printf("#%d  %s %s  %-20s  %s\n", r.ID, r.Date, r.Time, r.Location, r.Label)
			}
			return nil
		})
	},
}

var rehearsalRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a rehearsal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("rehearsal", args[0])
		if err != nil {
			return err
		}
		return run("rehearsal rm", args, func(a *app.SidekickApp) error {
			return a.RemoveRehearsal(cmd.Context(), id)
		})
	},
}

// session command
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage studio sessions",
}

var sessionAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add a studio session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")
		tm, _ := cmd.Flags().GetString("time")
		location, _ := cmd.Flags().GetString("location")
		kind, _ := cmd.Flags().GetString("type")
		other, _ := cmd.Flags().GetString("type-other")
		note, _ := cmd.Flags().GetString("note")

		return run("session add", args, func(a *app.SidekickApp) error {
			s, err := a.AddStudioSession(cmd.Context(), sidekick.StudioSession{
				Title:            args[0],
				Date:             date,
				Time:             tm,
				Location:         location,
				SessionType:      sidekick.SessionType(kind),
				SessionTypeOther: other,
				Note:             note,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added #%d  %s %s  %s\n", s.ID, s.Date, s.Time, s.Title)
			return nil
		})
	},
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List studio sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("session list", nil, func(a *app.SidekickApp) error {
			sessions := a.StudioSessions(cmd.Context())
			if len(sessions) == 0 {
				fmt.Println("No sessions.")
				return nil
			}
			for _, s := range sessions {
				kind := string(s.SessionType)
				if s.SessionTypeOther != "" {
					kind = s.SessionTypeOther
				}
				fmt.Printf("#%d  %s %s  %-20s  %-10s  %s\n", s.ID, s.Date, s.Time, s.Title, kind, s.Location)
			}
			return nil
		})
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a studio session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("session", args[0])
		if err != nil {
			return err
		}
		return run("session rm", args, func(a *app.SidekickApp) error {
			return a.RemoveStudioSession(cmd.Context(), id)
		})
	},
}

// equipment command
var equipmentCmd = &cobra.Command{
	Use:   "equipment",
	Short: "Manage the equipment inventory and material lists",
}

var equipmentItemCmd = &cobra.Command{
	Use:   "item NAME",
	Short: "Add an inventory item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, _ := cmd.Flags().GetInt("quantity")
		cond, _ := cmd.Flags().GetString("condition")
		comment, _ := cmd.Flags().GetString("comment")
		c, err := sidekick.ParseCondition(cond)
		if err != nil {
			return err
		}

		return run("equipment item", args, func(a *app.SidekickApp) error {
			it, err := a.AddInventoryItem(cmd.Context(), sidekick.InventoryItem{
				Name:      args[0],
				Quantity:  qty,
				Condition: c,
				Comment:   comment,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added #%d  %s x%d\n", it.ID, it.Name, it.Quantity)
			return nil
		})
	},
}

var equipmentRmItemCmd = &cobra.Command{
	Use:   "rm-item ID",
	Short: "Remove an inventory item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("item", args[0])
		if err != nil {
			return err
		}
		return run("equipment rm-item", args, func(a *app.SidekickApp) error {
			return a.RemoveInventoryItem(cmd.Context(), id)
		})
	},
}

var equipmentListAddCmd = &cobra.Command{
	Use:   "list-add NAME [ITEM_ID]...",
	Short: "Create a material list from inventory items",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		ids := make([]int64, 0, len(args)-1)
		for _, s := range args[1:] {
			id, err := parseID("item", s)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}

		return run("equipment list-add", args, func(a *app.SidekickApp) error {
			l, err := a.AddMaterialList(cmd.Context(), sidekick.MaterialList{
				Name:        args[0],
				Description: description,
				ItemIDs:     ids,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added list #%d  %s (%d items)\n", l.ID, l.Name, len(l.ItemIDs))
			return nil
		})
	},
}

var equipmentListRmCmd = &cobra.Command{
	Use:   "list-rm ID",
	Short: "Remove a material list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("material list", args[0])
		if err != nil {
			return err
		}
		return run("equipment list-rm", args, func(a *app.SidekickApp) error {
			return a.RemoveMaterialList(cmd.Context(), id)
		})
	},
}

var equipmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the inventory and the material lists",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("equipment list", nil, func(a *app.SidekickApp) error {
			items := a.Inventory(cmd.Context())
			if len(items) == 0 {
				fmt.Println("No inventory.")
			} else {
				fmt.Println("Inventory:")
				printItems(items, "  ")
			}
			for _, v := range a.MaterialListViews(cmd.Context()) {
				fmt.Printf("List #%d  %s  %s\n", v.List.ID, v.List.Name, v.List.Description)
				printItems(v.Items, "  ")
			}
			return nil
		})
	},
}

func printItems(items []sidekick.InventoryItem, indent string) {
	for _, it := range items {
		fmt.Printf("%s#%d  %-24s  x%-3d  %s\n", indent, it.ID, it.Name, it.Quantity, it.Condition)
	}
}

func addLiveCommands() {
	gigCmd.AddCommand(gigAddCmd, gigListCmd, gigShowCmd, gigRmCmd,
		gigMaterialCmd, gigTransportCmd, gigLodgingCmd, gigDocumentCmd, gigTimetableCmd)
	gigAddCmd.Flags().String("city", "", "City")
	gigAddCmd.Flags().String("date", "", "Date as DD/MM/YYYY (default: today)")
	gigAddCmd.Flags().String("address", "", "Venue address")
	gigAddCmd.Flags().String("status", string(sidekick.TourOption), "Booking status")
	gigAddCmd.Flags().String("note", "", "Note")
	gigTransportCmd.Flags().String("type", "train", "train, plane, car or other")
	gigTransportCmd.Flags().String("amount", "", "Amount")
	gigTransportCmd.Flags().String("payment", string(sidekick.PaymentSelf), "self, reimburse or covered")
	gigTransportCmd.Flags().String("details", "", "Details")
	gigLodgingCmd.Flags().String("type", "hotel", "hotel, airbnb, friend or other")
	gigLodgingCmd.Flags().String("nights", "1", "Number of nights")
	gigLodgingCmd.Flags().String("amount", "", "Amount")
	gigLodgingCmd.Flags().String("payment", string(sidekick.PaymentSelf), "self, reimburse or covered")
	gigLodgingCmd.Flags().String("details", "", "Details")
	gigDocumentCmd.Flags().String("type", "contract", "contract, tech or other")

	rehearsalCmd.AddCommand(rehearsalAddCmd, rehearsalListCmd, rehearsalRmCmd)
	rehearsalAddCmd.Flags().String("label", "", "Label")
	rehearsalAddCmd.Flags().String("date", "", "Date as DD/MM/YYYY (default: today)")
	rehearsalAddCmd.Flags().String("time", sidekick.DefaultTime, "Start time")
	rehearsalAddCmd.Flags().String("address", "", "Address")
	rehearsalAddCmd.Flags().String("note", "", "Note")

	sessionCmd.AddCommand(sessionAddCmd, sessionListCmd, sessionRmCmd)
	sessionAddCmd.Flags().String("date", "", "Date as DD/MM/YYYY (default: today)")
	sessionAddCmd.Flags().String("time", sidekick.DefaultTime, "Start time")
	sessionAddCmd.Flags().String("location", "", "Studio")
	sessionAddCmd.Flags().String("type", string(sidekick.SessionRecording), "prise, essai, mix, mastering or autre")
	sessionAddCmd.Flags().String("type-other", "", "Session type when --type is autre")
	sessionAddCmd.Flags().String("note", "", "Note")

	equipmentCmd.AddCommand(equipmentItemCmd, equipmentRmItemCmd, equipmentListAddCmd, equipmentListRmCmd, equipmentListCmd)
	equipmentItemCmd.Flags().Int("quantity", 1, "Quantity")
	equipmentItemCmd.Flags().String("condition", string(sidekick.ConditionGood), "A réparer, Moyen, Bon or Neuf")
	equipmentItemCmd.Flags().String("comment", "", "Comment")
	equipmentListAddCmd.Flags().String("description", "", "Description")

	rootCmd.AddCommand(gigCmd, rehearsalCmd, sessionCmd, equipmentCmd)
}
