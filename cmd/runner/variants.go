package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-runner/internal/registry"
	"github.com/vovakirdan/dino-runner/internal/variants"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List all available variants",
	Long:  `Shows every registered variant with its obstacle table and stored record.`,
	Args:  cobra.NoArgs,
	RunE:  runVariants,
}

func runVariants(_ *cobra.Command, _ []string) error {
	list := registry.List()
	if len(list) == 0 {
		fmt.Println("No variants available.")
		return nil
	}

	store := openStore(newLogger("runner"))
	if store != nil {
		defer store.Close()
	}

	maxIDLen := 2 // "ID" header
	for _, v := range list {
		maxIDLen = max(maxIDLen, len(v.ID))
	}

	fmt.Println("Available variants:")
	fmt.Println()
	fmt.Printf("  %-*s  %-18s  %-6s  %s\n", maxIDLen, "ID", "Title", "Record", "Obstacles")
	fmt.Printf("  %-*s  %-18s  %-6s  %s\n", maxIDLen, "--", "-----", "------", "---------")

	for _, v := range list {
		record := 0
		if store != nil {
			record, _ = store.Record(v.ID)
		}

		kinds := "?"
		if cfg, err := variants.LoadConfig(v.ID, flagConfig, difficulty()); err == nil {
			kinds = ""
			for i, k := range cfg.Kinds {
				if i > 0 {
					kinds += ", "
				}
				kinds += k.Name
			}
		}

		fmt.Printf("  %-*s  %-18s  %-6d  %s\n", maxIDLen, v.ID, v.Title, record, kinds)
	}

	fmt.Println()
	fmt.Println("Run 'runner play <id>' to play a variant.")
	return nil
}
