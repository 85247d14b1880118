package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roasbeef/codex-peon/internal/category"
	"github.com/roasbeef/codex-peon/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read/write config",
	Long: `Read and write config.json by dot path, and manage the
classifier keyword lists.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get config key (or full config)",
	Long: `Print the value at a dot path like volume or
cooldowns_seconds.acknowledge, or the full config when no key is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set config key",
	Long: `Set the value at a dot path. The value is parsed as a JSON
literal (0.7, true, ["a"]) and falls back to a raw string.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Manage keyword lists",
}

var keywordsAddCmd = &cobra.Command{
	Use:   "add <category> <term>",
	Short: "Add keyword",
	Args:  cobra.ExactArgs(2),
	RunE:  runKeywordsAdd,
}

var keywordsRemoveCmd = &cobra.Command{
	Use:   "remove <category> <term>",
	Short: "Remove keyword",
	Args:  cobra.ExactArgs(2),
	RunE:  runKeywordsRemove,
}

func init() {
	keywordsCmd.AddCommand(keywordsAddCmd)
	keywordsCmd.AddCommand(keywordsRemoveCmd)

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(keywordsCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	dir, err := peonDir()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		doc, err := config.Document(dir)
		if err != nil {
			return err
		}

		return printJSON(doc)
	}

	value, err := config.GetKey(dir, args[0])
	if err != nil {
		return err
	}

	switch value.(type) {
	case map[string]any, []any:
		return printJSON(value)
	default:
		fmt.Println(value)
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	dir, err := peonDir()
	if err != nil {
		return err
	}

	key, value := args[0], config.ParseValue(args[1])
	if err := config.SetKey(dir, key, value); err != nil {
		return err
	}

	rendered, err := json.Marshal(value)
	if err != nil {
		return err
	}
	printPeonf("set %s = %s", key, rendered)

	return nil
}

func runKeywordsAdd(cmd *cobra.Command, args []string) error {
	dir, err := peonDir()
	if err != nil {
		return err
	}

	cat := category.Category(args[0])
	added, err := config.AddKeyword(dir, cat, args[1])
	if err != nil {
		return err
	}

	if !added {
		printPeonf("keyword already present for %s", cat)
		return nil
	}

	printPeonf("added keyword to %s: %s", cat, args[1])

	return nil
}

func runKeywordsRemove(cmd *cobra.Command, args []string) error {
	dir, err := peonDir()
	if err != nil {
		return err
	}

	cat := category.Category(args[0])
	removed, err := config.RemoveKeyword(dir, cat, args[1])
	if err != nil {
		return err
	}

	if !removed {
		return fmt.Errorf("keyword not found for %s: %s",
			cat, args[1])
	}

	printPeonf("removed keyword from %s: %s", cat, args[1])

	return nil
}

// printJSON renders a value as indented JSON on stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))

	return nil
}
