package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roasbeef/codex-peon/internal/config"
	"github.com/roasbeef/codex-peon/internal/sound"
)

var packsCmd = &cobra.Command{
	Use:   "packs",
	Short: "List packs",
	Long:  `List installed sound packs; the active pack is marked.`,
	RunE:  runPacks,
}

var packCmd = &cobra.Command{
	Use:   "pack [name]",
	Short: "Switch pack (or cycle when omitted)",
	Long: `Switch the active sound pack to the named pack, or cycle to
the next installed pack when no name is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPack,
}

func init() {
	rootCmd.AddCommand(packsCmd)
	rootCmd.AddCommand(packCmd)
}

func runPacks(cmd *cobra.Command, args []string) error {
	dir, err := peonDir()
	if err != nil {
		return err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	packs := sound.ListPacks(sound.PacksDir(dir))
	if len(packs) == 0 {
		fmt.Fprintln(os.Stderr,
			"No packs found. Re-run install.sh.")
		return fmt.Errorf("no packs installed")
	}

	for _, pack := range packs {
		marker := ""
		if pack.Name == cfg.ActivePack {
			marker = " *"
		}
		fmt.Printf("  %-24s %s%s\n",
			pack.Name, pack.DisplayName, marker)
	}

	return nil
}

func runPack(cmd *cobra.Command, args []string) error {
	dir, err := peonDir()
	if err != nil {
		return err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	packs := sound.ListPacks(sound.PacksDir(dir))
	if len(packs) == 0 {
		fmt.Fprintln(os.Stderr,
			"No packs found. Re-run install.sh.")
		return fmt.Errorf("no packs installed")
	}

	var next string
	if len(args) == 1 {
		name := args[0]
		if !packInstalled(packs, name) {
			return fmt.Errorf("pack %q not found, available: %s",
				name, packNames(packs))
		}
		next = name
	} else {
		next = nextPack(packs, cfg.ActivePack)
	}

	cfg.ActivePack = next
	if err := config.Save(dir, cfg); err != nil {
		return err
	}

	display := next
	if m := sound.LoadManifest(sound.PacksDir(dir), next); m != nil &&
		m.DisplayName != "" {

		display = m.DisplayName
	}

	printPeonf("switched to %s (%s)", next, display)

	return nil
}

// packInstalled reports whether name is among the installed packs.
func packInstalled(packs []sound.PackInfo, name string) bool {
	for _, pack := range packs {
		if pack.Name == name {
			return true
		}
	}

	return false
}

// packNames renders the installed pack names for error messages.
func packNames(packs []sound.PackInfo) string {
	names := ""
	for i, pack := range packs {
		if i > 0 {
			names += ", "
		}
		names += pack.Name
	}

	return names
}

// nextPack returns the pack after active in listing order, wrapping
// around, or the first pack when the active one is not installed.
func nextPack(packs []sound.PackInfo, active string) string {
	for i, pack := range packs {
		if pack.Name == active {
			return packs[(i+1)%len(packs)].Name
		}
	}

	return packs[0].Name
}
