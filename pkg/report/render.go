package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Summary is the JSON form of a census.
type Summary struct {
	Words   int   `json:"words"`
	Invalid int   `json:"invalid,omitempty"`
	Opcodes []Row `json:"opcodes"`
}

// Summarize converts a census into its serializable form.
func Summarize(c *Census) Summary {
	return Summary{
		Words:   c.Words(),
		Invalid: c.Invalid(),
		Opcodes: c.Rows(),
	}
}

// WriteJSON writes a census as indented JSON.
func WriteJSON(w io.Writer, c *Census) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Summarize(c))
}

// ReadJSON reads a summary previously written by WriteJSON.
func ReadJSON(r io.Reader) (Summary, error) {
	var s Summary
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// WriteTable renders a census as an aligned text table.
func WriteTable(w io.Writer, c *Census) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Opcode", "Mnemonic", "Count"})
	for _, row := range c.Rows() {
		table.Append([]string{
			strconv.Itoa(int(row.Opcode)),
			row.Mnemonic,
			strconv.Itoa(row.Count),
		})
	}
	table.Render()
	fmt.Fprintf(w, "%d words total", c.Words())
	if c.Invalid() > 0 {
		fmt.Fprintf(w, ", %d non-instruction", c.Invalid())
	}
	fmt.Fprintln(w)
}
