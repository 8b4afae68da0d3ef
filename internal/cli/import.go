package cli

import (
	"fmt"

	"github.com/lazypower/rolodex/internal/importer"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import contacts from a Relatable CSV export",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	res, err := importer.ImportFile(db, args[0])
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	fmt.Println("--- Import complete ---")
	fmt.Printf("Rows read:            %d\n", res.TotalRows)
	fmt.Printf("Contacts created:     %d\n", res.Contacts)
	fmt.Printf("Interactions created: %d\n", res.Interactions)
	fmt.Printf("Rows skipped:         %d\n", res.Skipped)
	return nil
}
