package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/puppybowl/internal/cards"
	"github.com/mcoot/puppybowl/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
}

// NewOutput creates a new Output formatter writing to out
func NewOutput(format string, out io.Writer) *Output {
	return &Output{format: format, out: out}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == FormatJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == FormatJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.out, string(data))
	} else {
		_, _ = fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case []cards.Card:
		o.printCards(v)
	case cards.Card:
		o.printCard(v)
	case PlayerResult:
		o.printPlayer(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// PlayerResult is a player as printed by the CLI
type PlayerResult struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Breed     string `json:"breed"`
	Status    string `json:"status"`
	ImageURL  string `json:"imageUrl"`
	CreatedAt string `json:"createdAt"`
	TeamID    string `json:"teamId"`
	CohortID  string `json:"cohortId"`
}

// PlayerResultFromModel converts a model.Player for printing
func PlayerResultFromModel(p *model.Player) PlayerResult {
	return PlayerResult{
		ID:        string(p.ID),
		Name:      p.Name.String(),
		Breed:     p.Breed.String(),
		Status:    p.Status.String(),
		ImageURL:  p.ImageURL.String(),
		CreatedAt: p.CreatedAt.String(),
		TeamID:    p.TeamID.String(),
		CohortID:  p.CohortID.String(),
	}
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	API     string `json:"api"`
	Players int    `json:"players"`
}

func (o *Output) printCards(cs []cards.Card) {
	if len(cs) == 0 {
		_, _ = fmt.Fprintln(o.out, "No players on the roster")
		return
	}
	for i, c := range cs {
		if i > 0 {
			_, _ = fmt.Fprintln(o.out)
		}
		o.printCard(c)
	}
}

func (o *Output) printCard(c cards.Card) {
	_, _ = fmt.Fprintf(o.out, "%s (#%s)\n", c.Name, c.ID)
	for _, f := range c.VisibleFields() {
		if f.Value == "" || f.Name == "id" || f.Name == "name" {
			continue
		}
		_, _ = fmt.Fprintf(o.out, "  %-8s %s\n", f.Label+":", f.Value)
	}
	if hidden := c.HiddenFields(); !c.Revealed && len(hidden) > 0 {
		names := make([]string, 0, len(hidden))
		for _, f := range hidden {
			names = append(names, f.Label)
		}
		_, _ = fmt.Fprintf(o.out, "  (%s hidden; use --details)\n", strings.Join(names, ", "))
	}
}

func (o *Output) printPlayer(p PlayerResult) {
	_, _ = fmt.Fprintf(o.out, "Player: %s (#%s)\n", p.Name, p.ID)
	rows := []struct{ label, value string }{
		{"Breed", p.Breed},
		{"Status", p.Status},
		{"Image", p.ImageURL},
		{"Created", p.CreatedAt},
		{"Team", p.TeamID},
		{"Cohort", p.CohortID},
	}
	for _, row := range rows {
		if row.value != "" {
			_, _ = fmt.Fprintf(o.out, "%s: %s\n", row.label, row.value)
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.out, "Status: %s\n", h.Status)
	_, _ = fmt.Fprintf(o.out, "API: %s\n", h.API)
	_, _ = fmt.Fprintf(o.out, "Players: %d\n", h.Players)
}
