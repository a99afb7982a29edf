package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/wallarm/httpcheck/internal/check"
	"github.com/wallarm/httpcheck/internal/db"
)

// The minimum length of each column in a console table report.
const colMinWidth = 12

// Console prints outcomes as they are produced and the summary at the end of
// the run. In the json format every line is a separate JSON object.
type Console struct {
	out    io.Writer
	format string
	enc    *json.Encoder

	green  *color.Color
	red    *color.Color
	yellow *color.Color
	blue   *color.Color
	bold   *color.Color
}

func NewConsole(out io.Writer, format string, noColor bool) (*Console, error) {
	if err := ValidateConsoleFormat(format); err != nil {
		return nil, err
	}

	c := &Console{
		out:    out,
		format: format,
		enc:    json.NewEncoder(out),
		green:  color.New(color.FgHiGreen),
		red:    color.New(color.FgHiRed),
		yellow: color.New(color.FgHiYellow),
		blue:   color.New(color.FgHiBlue),
		bold:   color.New(color.Bold),
	}

	for _, col := range []*color.Color{c.green, c.red, c.yellow, c.blue, c.bold} {
		if noColor {
			col.DisableColor()
		} else {
			col.EnableColor()
		}
	}

	return c, nil
}

type jsonEvent struct {
	Event   string         `json:"event"`
	URL     string         `json:"url,omitempty"`
	Args    string         `json:"args,omitempty"`
	Message string         `json:"message,omitempty"`
	Outcome *check.Outcome `json:"outcome,omitempty"`
	Summary *db.Summary    `json:"summary,omitempty"`
}

// Header announces the run.
func (c *Console) Header(url string, args []string) {
	if c.format == JsonFormat {
		c.enc.Encode(jsonEvent{Event: "start", URL: url, Args: strings.Join(args, " ")})
		return
	}

	c.bold.Fprintln(c.out, "HTTP Server Test Suite")
	fmt.Fprintf(c.out, "Testing server at: %s\n", url)
	if len(args) > 0 {
		fmt.Fprintf(c.out, "Arguments: %s\n", strings.Join(args, " "))
	}
	fmt.Fprintln(c.out, strings.Repeat("=", 50))
}

// Notice prints a highlighted progress line such as fixture setup.
func (c *Console) Notice(message string) {
	if c.format == JsonFormat {
		c.enc.Encode(jsonEvent{Event: "notice", Message: message})
		return
	}

	fmt.Fprintln(c.out)
	c.yellow.Fprintln(c.out, message)
}

// Unreachable reports that the liveness probe failed and nothing was run.
func (c *Console) Unreachable(url string, err error) {
	if c.format == JsonFormat {
		c.enc.Encode(jsonEvent{Event: "unreachable", URL: url, Message: err.Error()})
		return
	}

	fmt.Fprintf(c.out, "%s Server is not responding at %s\n", c.red.Sprint("✗"), url)
	fmt.Fprintln(c.out, "Make sure your server is running and reachable")
}

func (c *Console) Section(group string) {
	if c.format == JsonFormat {
		return
	}

	fmt.Fprintln(c.out)
	c.blue.Fprintf(c.out, "Testing %s\n", group)
}

func (c *Console) Report(outcome check.Outcome) {
	if c.format == JsonFormat {
		c.enc.Encode(jsonEvent{Event: "outcome", Outcome: &outcome})
		return
	}

	if outcome.IsPassed() {
		if outcome.Note != "" {
			fmt.Fprintf(c.out, "%s %s (%s)\n", c.green.Sprint("✓"), outcome.Name, outcome.Note)
			return
		}
		fmt.Fprintf(c.out, "%s %s\n", c.green.Sprint("✓"), outcome.Name)
		return
	}

	fmt.Fprintf(c.out, "%s %s: %s\n", c.red.Sprint("✗"), outcome.Name, c.red.Sprint(outcome.Reason))
}

// Summarize prints the totals and every failure reason. It returns true iff
// nothing failed.
func (c *Console) Summarize(s *db.Summary) bool {
	if c.format == JsonFormat {
		c.enc.Encode(jsonEvent{Event: "summary", Summary: s})
		return s.OK()
	}

	var buffer strings.Builder

	fmt.Fprintln(&buffer)
	c.bold.Fprintln(&buffer, "Test Summary:")

	if len(s.Groups) > 0 {
		baseHeader := []string{"Group", "Passed", "Failed", "Percentage, %"}

		table := tablewriter.NewWriter(&buffer)
		table.SetHeader(baseHeader)
		for index := range baseHeader {
			table.SetColMinWidth(index, colMinWidth)
		}

		for _, row := range s.Groups {
			table.Append([]string{
				row.Group,
				fmt.Sprintf("%d", row.Passed),
				fmt.Sprintf("%d", row.Failed),
				fmt.Sprintf("%.2f", row.Percentage),
			})
		}

		table.SetFooter([]string{
			"Total",
			fmt.Sprintf("%d", s.Passed),
			fmt.Sprintf("%d", s.Failed),
			fmt.Sprintf("%.2f", s.PassedPercentage),
		})
		table.Render()
	}

	fmt.Fprintf(&buffer, "Total tests: %d\n", s.Total())
	c.green.Fprintf(&buffer, "Passed: %d\n", s.Passed)
	c.red.Fprintf(&buffer, "Failed: %d\n", s.Failed)

	if s.Failed > 0 {
		fmt.Fprintln(&buffer)
		c.red.Fprintln(&buffer, "Failures:")
		for _, failure := range s.Failures {
			fmt.Fprintf(&buffer, "  %s\n", failure)
		}
	}

	fmt.Fprint(c.out, buffer.String())

	return s.OK()
}
