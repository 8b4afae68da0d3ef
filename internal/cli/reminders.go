package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lazypower/rolodex/internal/engine"
	"github.com/lazypower/rolodex/internal/store"
	"github.com/spf13/cobra"
)

// openDB is a helper that opens the database for CLI commands.
func openDB() (*store.DB, error) {
	dbPath := os.Getenv("ROLODEX_DB")
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return store.Open(dbPath)
}

func openEngine() (*engine.Engine, error) {
	db, err := openDB()
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return engine.New(db), nil
}

func displayName(first, last, nickname string) string {
	name := first
	if last != "" {
		name += " " + last
	}
	if nickname != "" {
		name += " (" + nickname + ")"
	}
	return name
}

// --- due command ---

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List contacts due for outreach",
	Long:  "Rank non-archived, non-snoozed contacts by how overdue they are relative to their cadence.",
	RunE:  runDue,
}

func runDue(cmd *cobra.Command, args []string) error {
	eng, err := openEngine()
	if err != nil {
		return err
	}
	defer eng.DB.Close()

	due, err := eng.DueContacts()
	if err != nil {
		return fmt.Errorf("due contacts: %w", err)
	}

	if len(due) == 0 {
		fmt.Println("Nobody is due. Nice work.")
		return nil
	}

	for i, d := range due {
		name := displayName(d.FirstName, d.LastName, d.Nickname)
		fmt.Printf("%d. [%+.2f] #%d %s — %s, every %d days\n",
			i+1, d.UrgencyScore, d.ID, name, d.Sphere, d.EffectiveFrequency)
		if d.LastInteractionAt != "" {
			fmt.Printf("   last contact %.0f days ago (%s)\n", d.DaysSinceContact, d.LastInteractionAt)
		} else {
			fmt.Printf("   never contacted; added %s\n", d.CreatedAt)
		}
	}
	return nil
}

// --- birthdays command ---

var birthdayWindow int

var birthdaysCmd = &cobra.Command{
	Use:   "birthdays",
	Short: "List upcoming birthdays",
	RunE:  runBirthdays,
}

func init() {
	birthdaysCmd.Flags().IntVarP(&birthdayWindow, "days", "n", 0, "Window in days (default from config)")
}

func runBirthdays(cmd *cobra.Command, args []string) error {
	eng, err := openEngine()
	if err != nil {
		return err
	}
	defer eng.DB.Close()

	upcoming, err := eng.UpcomingBirthdays(birthdayWindow)
	if err != nil {
		return fmt.Errorf("birthdays: %w", err)
	}

	if len(upcoming) == 0 {
		fmt.Println("No birthdays coming up.")
		return nil
	}

	for _, b := range upcoming {
		name := displayName(b.FirstName, b.LastName, "")
		switch b.DaysUntil {
		case 0:
			fmt.Printf("#%d %s — today!\n", b.ID, name)
		case 1:
			fmt.Printf("#%d %s — tomorrow\n", b.ID, name)
		default:
			fmt.Printf("#%d %s — in %d days\n", b.ID, name, b.DaysUntil)
		}
	}
	return nil
}

// --- snooze command ---

var snoozeCmd = &cobra.Command{
	Use:   "snooze <contact-id> <days>",
	Short: "Snooze a contact's reminders",
	Args:  cobra.ExactArgs(2),
	RunE:  runSnooze,
}

func runSnooze(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid contact id %q", args[0])
	}
	days, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid days %q", args[1])
	}

	eng, err := openEngine()
	if err != nil {
		return err
	}
	defer eng.DB.Close()

	contact, err := eng.Snooze(id, days)
	if err != nil {
		return fmt.Errorf("snooze: %w", err)
	}

	name := displayName(contact.FirstName, contact.LastName, contact.Nickname)
	fmt.Printf("Snoozed %s until %s\n", name, contact.SnoozedUntil)
	return nil
}

// --- dismiss command ---

var dismissCmd = &cobra.Command{
	Use:   "dismiss <contact-id>",
	Short: "Clear a contact's snooze",
	Args:  cobra.ExactArgs(1),
	RunE:  runDismiss,
}

func runDismiss(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid contact id %q", args[0])
	}

	eng, err := openEngine()
	if err != nil {
		return err
	}
	defer eng.DB.Close()

	contact, err := eng.Dismiss(id)
	if err != nil {
		return fmt.Errorf("dismiss: %w", err)
	}

	name := displayName(contact.FirstName, contact.LastName, contact.Nickname)
	fmt.Printf("%s is back on the due list.\n", name)
	return nil
}

// --- search command ---

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search contacts",
	Long:  "Token search across name, company, notes, interests, and title. All tokens must match.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	eng, err := openEngine()
	if err != nil {
		return err
	}
	defer eng.DB.Close()

	results, err := eng.Search(query)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	for i, c := range results {
		name := displayName(c.FirstName, c.LastName, c.Nickname)
		fmt.Printf("%d. #%d %s", i+1, c.ID, name)
		if c.Company != "" {
			fmt.Printf(" — %s", c.Company)
		}
		fmt.Printf(" [%s]\n", c.Sphere)
	}
	return nil
}
