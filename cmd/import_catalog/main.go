package main

import (
	"fmt"
	"os"
	"strings"

	"library-catalog/library"
)

// import_catalog checks a catalog file by loading it into a fresh library
// and printing what was registered.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <catalog.{toml,yaml,json}>\n", os.Args[0])
		os.Exit(2)
	}
	path := os.Args[1]

	fmt.Printf("Importing catalog from %s...\n", path)
	catalog, err := library.LoadCatalog(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	lib := library.NewLibrary()
	if err := catalog.Register(lib); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering catalog: %v\n", err)
		os.Exit(1)
	}

	snap := lib.Snapshot()
	fmt.Printf("\nImport complete!\n")
	fmt.Printf("Patrons: %d\n", len(snap.Patrons))
	fmt.Printf("Items:   %d\n", len(snap.Items))

	if len(snap.Patrons) > 0 {
		fmt.Println("\nPatrons:")
		fmt.Printf("%-10s %-40s\n", "ID", "Name")
		fmt.Println(strings.Repeat("-", 50))
		for _, p := range snap.Patrons {
			fmt.Printf("%-10s %-40s\n", p.ID, truncateString(p.Name, 40))
		}
	}

	if len(snap.Items) > 0 {
		fmt.Println("\nItems:")
		fmt.Printf("%-10s %-40s %-6s %-4s %-25s\n", "ID", "Title", "Kind", "Days", "Creator")
		fmt.Println(strings.Repeat("-", 89))
		for _, it := range snap.Items {
			fmt.Printf("%-10s %-40s %-6s %-4d %-25s\n", it.ID, truncateString(it.Title, 40), it.Kind, it.CheckOutLength, truncateString(it.Creator, 25))
		}
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
