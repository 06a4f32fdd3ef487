package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pbaille/trip/internal/advisor"
	"github.com/pbaille/trip/internal/domain"
	"github.com/pbaille/trip/internal/maplink"
	"github.com/pbaille/trip/internal/report"
	"github.com/spf13/cobra"
)

func daysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "days",
		Short: "List the days of the trip",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, slot, err := getStore(cmd.Context())
			if err != nil {
				return err
			}
			defer slot.Close()

			for i, d := range s.Days() {
				done := 0
				for _, a := range d.Activities {
					if a.IsCompleted {
						done++
					}
				}
				fmt.Printf("%d  %s  %-12s", i+1, d.Date, d.DayName)
				if d.Weather != nil {
					fmt.Printf("  %s %s %d°C", d.Weather.Icon, d.Weather.Location, d.Weather.Temp)
				}
				fmt.Printf("  (%d/%d done)\n", done, len(d.Activities))
			}
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	var day int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show activities, ordered by time",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, slot, err := getStore(cmd.Context())
			if err != nil {
				return err
			}
			defer slot.Close()

			days := s.Days()
			from, to := 0, len(days)
			if day != 0 {
				idx, err := dayIndex(s, day)
				if err != nil {
					return err
				}
				from, to = idx, idx+1
			}

			for i := from; i < to; i++ {
				d := days[i]
				fmt.Printf("Day %d  %s\n", i+1, d.DayName)
				if d.Weather != nil {
					fmt.Printf("  %s %s %d°C %s, %s\n", d.Weather.Icon, d.Weather.Location, d.Weather.Temp, d.Weather.Condition, d.Weather.Clothing)
				}

				acts, err := s.ActivitiesSortedByTime(i)
				if err != nil {
					return err
				}
				if len(acts) == 0 {
					fmt.Println("  (no activities)")
				}
				for _, a := range acts {
					printActivity(a)
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&day, "day", "d", 0, "only show this day (1-based)")
	return cmd
}

func printActivity(a domain.Activity) {
	mark := " "
	if a.IsCompleted {
		mark = "x"
	}
	fmt.Printf("  [%s] %s  %-8s  %s  %s", mark, a.Time, shortID(a.ID), a.Category.Label(), truncate(a.Title, 40))
	if a.Cost > 0 {
		fmt.Printf("  %s", report.Money(a.Cost, a.Currency))
	}
	fmt.Println()
	if a.Location != "" {
		fmt.Printf("        @ %s\n", a.Location)
	}
	if a.Notes != "" {
		fmt.Printf("        %s\n", truncate(a.Notes, 60))
	}
}

// activityFlags are the editable fields shared by add and edit
type activityFlags struct {
	time, title, location, category, currency, notes string
	cost                                             int
}

func (f *activityFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.time, "time", "12:00", "start time (HH:MM)")
	cmd.Flags().StringVar(&f.title, "title", "", "activity title")
	cmd.Flags().StringVar(&f.location, "location", "", "place name used for map search")
	cmd.Flags().StringVar(&f.category, "category", string(domain.Flexible),
		fmt.Sprintf("one of %s", joinCategories()))
	cmd.Flags().IntVar(&f.cost, "cost", 0, "estimated cost")
	cmd.Flags().StringVar(&f.currency, "currency", string(domain.JPY), "JPY or TWD")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
}

// apply copies the flags the user set onto a
func (f *activityFlags) apply(cmd *cobra.Command, a *domain.Activity) {
	flags := cmd.Flags()
	if flags.Changed("time") {
		a.Time = f.time
	}
	if flags.Changed("title") {
		a.Title = f.title
	}
	if flags.Changed("location") {
		a.Location = f.location
	}
	if flags.Changed("category") {
		a.Category = parseCategory(f.category)
	}
	if flags.Changed("cost") {
		a.Cost = f.cost
	}
	if flags.Changed("currency") {
		a.Currency = domain.Currency(strings.ToUpper(f.currency))
	}
	if flags.Changed("notes") {
		a.Notes = f.notes
	}
}

// parseCategory matches names case-insensitively. Unknown names are kept
// as given so validation reports them.
func parseCategory(name string) domain.Category {
	for _, c := range domain.Categories() {
		if strings.EqualFold(string(c), name) {
			return c
		}
	}
	return domain.Category(name)
}

func joinCategories() string {
	names := make([]string, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func addCmd() *cobra.Command {
	var day int
	var f activityFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an activity to a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, slot, err := getStore(cmd.Context())
			if err != nil {
				return err
			}
			defer slot.Close()

			idx, err := dayIndex(s, day)
			if err != nil {
				return err
			}

			a := s.NewActivity()
			f.apply(cmd, &a)

			stored, err := s.Upsert(cmd.Context(), idx, a)
			if err != nil {
				return err
			}

			fmt.Printf("Added activity: %s\n", shortID(stored.ID))
			printActivity(stored)
			return nil
		},
	}

	cmd.Flags().IntVarP(&day, "day", "d", 1, "day number (1-based)")
	f.bind(cmd)
	cmd.MarkFlagRequired("title")
	return cmd
}

func editCmd() *cobra.Command {
	var f activityFlags

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, slot, err := getStore(cmd.Context())
			if err != nil {
				return err
			}
			defer slot.Close()

			day, a, ok := s.FindPrefix(args[0])
			if !ok {
				return fmt.Errorf("activity not found: %s", args[0])
			}
			f.apply(cmd, &a)

			stored, err := s.Upsert(cmd.Context(), day, a)
			if err != nil {
				return err
			}

			fmt.Printf("Updated activity: %s\n", shortID(stored.ID))
			printActivity(stored)
			return nil
		},
	}

	f.bind(cmd)
	return cmd
}

func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [id]",
		Short: "Mark an activity done or not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, slot, err := getStore(cmd.Context())
			if err != nil {
				return err
			}
			defer slot.Close()

			_, id, err := findActivity(s, args[0])
			if err != nil {
				return err
			}
			s.ToggleComplete(cmd.Context(), id)

			_, a, _ := s.Find(id)
			printActivity(a)
			return nil
		},
	}
}

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, slot, err := getStore(cmd.Context())
			if err != nil {
				return err
			}
			defer slot.Close()

			day, id, err := findActivity(s, args[0])
			if err != nil {
				return err
			}
			if err := s.Delete(cmd.Context(), day, id); err != nil {
				return err
			}

			fmt.Printf("Deleted activity: %s\n", shortID(id))
			return nil
		},
	}
}

func expensesCmd() *cobra.Command {
	var currency string

	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Show spending by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, slot, err := getStore(cmd.Context())
			if err != nil {
				return err
			}
			defer slot.Close()

			b := report.Expenses(s.AllActivities(), domain.Currency(strings.ToUpper(currency)))
			if b.Total == 0 {
				fmt.Printf("No %s expenses recorded.\n", b.Currency)
				return nil
			}

			for _, c := range b.Categories {
				fmt.Printf("%-6s %12s  %3.0f%%\n", c.Label, report.Money(c.Amount, b.Currency), c.Share*100)
			}
			fmt.Printf("%-6s %12s\n", "Total", report.Money(b.Total, b.Currency))
			return nil
		},
	}

	cmd.Flags().StringVarP(&currency, "currency", "c", string(domain.JPY), "JPY or TWD")
	return cmd
}

func tipCmd() *cobra.Command {
	var expenses bool

	cmd := &cobra.Command{
		Use:   "tip [id]",
		Short: "Ask for a travel tip about an activity, or about spending",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !expenses && len(args) == 0 {
				return fmt.Errorf("give an activity id or --expenses")
			}

			s, slot, err := getStore(cmd.Context())
			if err != nil {
				return err
			}
			defer slot.Close()

			adv, err := advisor.FromConfig(cmd.Context(), cfg.Advisor(), cfg.City, cfg.TipTimeout)
			if err != nil {
				return err
			}
			defer adv.Close()

			if expenses {
				acts := s.AllActivities()
				b := report.Expenses(acts, domain.JPY)
				fmt.Printf("Total: %s\n", report.Money(b.Total, domain.JPY))
				fmt.Println(adv.AnalyzeExpenses(cmd.Context(), b.Total, acts))
				return nil
			}

			_, a, ok := s.FindPrefix(args[0])
			if !ok {
				return fmt.Errorf("activity not found: %s", args[0])
			}

			fmt.Printf("%s  %s\n", a.Time, a.Title)
			fmt.Println(adv.GetTravelTip(cmd.Context(), a))
			return nil
		},
	}

	cmd.Flags().BoolVar(&expenses, "expenses", false, "analyze spending instead")
	return cmd
}

func mapCmd() *cobra.Command {
	var qrPath string
	var size int

	cmd := &cobra.Command{
		Use:   "map [id]",
		Short: "Print the map search link for an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, slot, err := getStore(cmd.Context())
			if err != nil {
				return err
			}
			defer slot.Close()

			_, a, ok := s.FindPrefix(args[0])
			if !ok {
				return fmt.Errorf("activity not found: %s", args[0])
			}
			if a.Location == "" {
				fmt.Println("(no location set, searching for an empty query)")
			}

			link := maplink.SearchURL(a.Location)
			fmt.Println(link)

			if qrPath != "" {
				if err := maplink.WriteQR(link, qrPath, size); err != nil {
					return err
				}
				fmt.Printf("QR code written to %s\n", qrPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&qrPath, "qr", "", "also write a QR code PNG to this path")
	cmd.Flags().IntVar(&size, "size", 256, "QR code size in pixels")
	return cmd
}

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the itinerary as a static HTML page",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, slot, err := getStore(cmd.Context())
			if err != nil {
				return err
			}
			defer slot.Close()

			if out == "" || out == "-" {
				return report.WriteHTML(os.Stdout, cfg.Title, s.Days())
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()

			if err := report.WriteHTML(f, cfg.Title, s.Days()); err != nil {
				return err
			}
			fmt.Printf("Exported to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}
