package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/replybot/internal/database"
	"github.com/vijay-prabhu/replybot/internal/responder"
)

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case responder.Result:
		return resultTable(w, &v)
	case *responder.Result:
		return resultTable(w, v)
	case []*responder.Rule:
		return rulesTable(w, v)
	case *database.CatalogState:
		return catalogState(w, v)
	case *database.StoredRule:
		return storedRule(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func resultTable(w io.Writer, r *responder.Result) error {
	fmt.Fprintf(w, "Tokens:   %s\n", formatTokens(r.Tokens))

	table := tablewriter.NewWriter(w)
	table.Header("Rule", "Score", "")
	for _, s := range r.Scores {
		marker := ""
		if !r.Fallback && s.Rule == r.Rule {
			marker = "<- winner"
		}
		if err := table.Append([]string{s.Rule, strconv.Itoa(s.Score), marker}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if r.Fallback {
		fmt.Fprintf(w, "Fallback: best score %d is below %d\n", r.Score, responder.MinScore)
	}
	fmt.Fprintf(w, "Response: %s\n", r.Response)
	return nil
}

func rulesTable(w io.Writer, rules []*responder.Rule) error {
	if len(rules) == 0 {
		fmt.Fprintln(w, "No rules loaded.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Name", "Recognized", "Required", "Always", "Response")
	for i, r := range rules {
		always := ""
		if r.AlwaysScore() {
			always = "yes"
		}
		row := []string{
			strconv.Itoa(i + 1),
			r.Name(),
			strings.Join(r.Recognized(), ", "),
			strings.Join(r.Required(), ", "),
			always,
			truncate(r.Response(), 40),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func catalogState(w io.Writer, s *database.CatalogState) error {
	if s.Source == nil {
		fmt.Fprintln(w, "No catalog imported.")
		return nil
	}

	fmt.Fprintf(w, "Source:      %s\n", *s.Source)
	if s.ImportedAt != nil {
		fmt.Fprintf(w, "Imported:    %s\n", s.ImportedAt.Format("Jan 02, 2006 15:04"))
	}
	fmt.Fprintf(w, "Rules:       %d\n", s.RuleCount)
	return nil
}

func storedRule(w io.Writer, r *database.StoredRule) error {
	fmt.Fprintf(w, "Name:        %s\n", r.Name)
	fmt.Fprintf(w, "Position:    %d\n", r.Position+1)
	fmt.Fprintf(w, "Response:    %s\n", r.Response)
	fmt.Fprintf(w, "Recognized:  %s\n", strings.Join(r.Recognized, ", "))
	if len(r.Required) > 0 {
		fmt.Fprintf(w, "Required:    %s\n", strings.Join(r.Required, ", "))
	}
	if r.AlwaysScore {
		fmt.Fprintln(w, "Always scores")
	}
	fmt.Fprintf(w, "ID:          %s\n", r.ID)
	fmt.Fprintf(w, "Imported:    %s\n", r.CreatedAt.Format("Jan 02, 2006 15:04"))
	return nil
}

// formatTokens quotes each token so empty ones stay visible
func formatTokens(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = strconv.Quote(t)
	}
	return "[" + strings.Join(quoted, " ") + "]"
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
