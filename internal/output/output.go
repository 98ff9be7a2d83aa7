package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"moviepreview/internal/handlers/render"
	"moviepreview/internal/services"
)

type Options struct {
	JSON    bool
	NoColor bool
	Out     io.Writer
	Err     io.Writer
}

// Output prints preview results for the terminal client, either as colored
// text or as the same JSON bodies the HTTP API returns
type Output struct {
	JSON bool

	out io.Writer
	err io.Writer

	green  *color.Color
	yellow *color.Color
	red    *color.Color
	gray   *color.Color
	bold   *color.Color
}

func New(opts Options) *Output {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	o := &Output{
		JSON:   opts.JSON,
		out:    opts.Out,
		err:    opts.Err,
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
		gray:   color.New(color.FgHiBlack),
		bold:   color.New(color.Bold),
	}
	if opts.NoColor || opts.JSON {
		for _, c := range []*color.Color{o.green, o.yellow, o.red, o.gray, o.bold} {
			c.DisableColor()
		}
	}
	return o
}

// IsInteractive reports whether f is attached to a terminal
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func (o *Output) Info(msg string) {
	if o.JSON {
		return
	}
	fmt.Fprintln(o.out, msg)
}

func (o *Output) Prompt(msg string) {
	fmt.Fprint(o.out, o.bold.Sprint(msg))
}

// Found prints the "Found" card
func (o *Output) Found(query string, result *services.PreviewResult) error {
	if o.JSON {
		return o.EmitJSON(render.PreviewFoundResponse{Found: true, Result: result})
	}

	fmt.Fprintln(o.out, o.green.Sprintf("✅ Found (%s)", result.Source))
	for _, line := range render.FoundLines(result) {
		label := o.gray.Sprintf("%-8s", line[0]+":")
		fmt.Fprintf(o.out, "  %s %s\n", label, line[1])
	}
	return nil
}

// NotFound prints the not-found hint
func (o *Output) NotFound(query string) error {
	if o.JSON {
		return o.EmitJSON(render.PreviewNotFoundResponse{Found: false, Message: render.NotFoundMessage})
	}

	fmt.Fprint(o.out, o.yellow.Sprint(render.NotFoundText()))
	return nil
}

// Problem prints an error with its checklist. JSON goes to stdout so scripts
// can read it; text goes to stderr.
func (o *Output) Problem(resp render.ErrorResponse) error {
	if o.JSON {
		return o.EmitJSON(resp)
	}

	fmt.Fprint(o.err, o.red.Sprint(render.ProblemText(resp)))
	return nil
}

func (o *Output) EmitJSON(v any) error {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
