package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/recipebox/internal/client/models"
)

const cardWidth = 64

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(cardWidth)

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("36"))
)

// renderCard renders one list entry. Owner-only actions are included only
// when owner is set.
func renderCard(r models.Recipe, owner bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(r.Title), mutedStyle.Render(fmt.Sprintf("#%d", r.ID)))
	if r.Description != "" {
		b.WriteString(r.Description + "\n")
	}
	author := r.Author
	if author == "" {
		author = "Unknown"
	}
	b.WriteString(mutedStyle.Render("by "+author) + "\n")
	if names := r.CategoryNames(); names != "" {
		b.WriteString(mutedStyle.Render("Categories: "+names) + "\n")
	}
	b.WriteString(actionStyle.Render(actionsLine(r.ID, owner)))
	return cardStyle.Render(b.String())
}

func actionsLine(id int64, owner bool) string {
	if owner {
		return fmt.Sprintf("view %d | edit %d | delete %d", id, id, id)
	}
	return fmt.Sprintf("view %d", id)
}

// renderRecipe renders the read-only detail view. categories are the
// catalog entries selected for the recipe.
func renderRecipe(r models.Recipe, categories []models.Category, owner bool) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(r.Title) + "\n\n")

	section := func(name, body string) {
		b.WriteString(titleStyle.Render(name) + "\n")
		b.WriteString(body + "\n\n")
	}
	section("Description", r.Description)
	section("Ingredients", r.Ingredients)
	section("Instructions", r.Instructions)

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	if len(names) == 0 {
		names = append(names, mutedStyle.Render("none"))
	}
	section("Categories", strings.Join(names, ", "))

	if r.Author != "" {
		b.WriteString(mutedStyle.Render("by "+r.Author) + "\n")
	}
	if owner {
		b.WriteString(actionStyle.Render(fmt.Sprintf("edit %d | delete %d", r.ID, r.ID)) + "\n")
	}
	return b.String()
}

// renderCatalog lists the categories, marking the selected ones.
func renderCatalog(catalog []models.Category, selected []int64) string {
	sel := make(map[int64]bool, len(selected))
	for _, id := range selected {
		sel[id] = true
	}

	var b strings.Builder
	for _, c := range catalog {
		mark := "[ ]"
		if sel[c.ID] {
			mark = "[x]"
		}
		line := fmt.Sprintf("  %s %d %s", mark, c.ID, c.Name)
		if c.Description != "" {
			line += mutedStyle.Render(" - " + c.Description)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
