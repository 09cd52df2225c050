package services

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"bunq-wrapped/internal/models"
)

const playlistSystemMessage = "You are a creative and witty music curator generating mood-based playlists."

// buildSloganPrompt renders the top company expenses as a readable text
// table and wraps it in the slogan instruction.
func buildSloganPrompt(expenses []models.Transaction) string {
	var b strings.Builder
	b.WriteString("Based on the following list of 100 major business expenses, summarize this year's spending in 10 words or fewer ")
	b.WriteString("with a quirky and hilarious slogan. Focus on the dominant themes. Do not use quotation marks or punctuation at the end.\n\n")

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "transaction_description\tcounterparty_name\tplace_name\tcategory")
	for i := range expenses {
		t := &expenses[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			orDash(t.Description),
			orDash(t.CounterpartyName),
			orDash(t.PlaceName),
			orDash(t.Category))
	}
	w.Flush()

	return b.String()
}

// buildPlaylistPrompt renders the top expenses as vibe lines and wraps
// them in the playlist instruction.
func buildPlaylistPrompt(expenses []models.Transaction) string {
	lines := make([]string, 0, len(expenses))
	for i := range expenses {
		t := &expenses[i]
		desc := ""
		if t.Description != nil {
			desc = *t.Description
		}
		lines = append(lines, fmt.Sprintf("- €%.2f on %q", t.Amount.Abs().InexactFloat64(), desc))
	}

	return "You are given a list of 5 massive expenses. Based on their emotional vibe, suggest 5 song titles that fit them. " +
		"Return the result as a single line, with each song formatted like: Song Title by Artist. " +
		"Separate each with a comma. Do not number or bold the list. Do not use quotation marks.\n\n" +
		"Expenses:\n" + strings.Join(lines, "\n")
}

func orDash(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "-"
	}
	return *s
}
