package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/skin"
)

func init() {
	RegisterCommand(&Command{
		Name:  "skins",
		Short: "List available skins",
		Long: `List the skins in catalog order, including any defined in clockface.yaml.

Each row shows a swatch for the eight color roles: background, primary,
secondary, tertiary, quaternary, edge, date and number.

Flags:
  --plain   Print hex values instead of color swatches`,
		Usage: "clockface skins [--plain]",
		Run:   runSkins,
	})
}

func runSkins(args []string) error {
	plain := false
	for _, a := range args {
		if a != "--plain" {
			return fmt.Errorf("unknown argument %q", a)
		}
		plain = true
	}
	res, err := resolve(overridesNone)
	if err != nil {
		return err
	}
	for i, name := range res.Catalog.Names() {
		sk, _ := res.Catalog.ByName(name)
		marker := " "
		if name == res.Settings.Skin.Name() {
			marker = "*"
		}
		fmt.Fprintf(stdout, "%s %2d  %-16s %s\n", marker, i, name, skinRow(sk, plain))
	}
	return nil
}

func skinRow(sk skin.Skin, plain bool) string {
	cells := make([]string, 0, len(skin.Roles()))
	for _, role := range skin.Roles() {
		c := sk.Color(role)
		if plain {
			cells = append(cells, c.Hex())
			continue
		}
		cells = append(cells, swatch(c))
	}
	return strings.Join(cells, " ")
}

func swatch(c graphics.Color) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("   ")
}
