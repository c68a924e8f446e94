package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"curriculum-backend/internal/client"
	"curriculum-backend/internal/curriculum"
	"curriculum-backend/internal/render"
)

const (
	formatText     = "text"
	formatStyled   = "styled"
	formatMarkdown = "markdown"
	formatPretty   = "pretty"
	formatJSON     = "json"
)

var (
	errInvalidSemester = errors.New("invalid semester")
	errServer          = errors.New("server rejected the request")
	errConnection      = errors.New("could not reach the server")
)

// displayError carries the sentence shown to the user alongside the error itself.
type displayError struct {
	message string
	err     error
}

func (e *displayError) Error() string { return e.err.Error() }
func (e *displayError) Unwrap() error { return e.err }

// report prints err for the user: the display sentence when there is one.
func report(w io.Writer, err error) {
	var d *displayError
	if errors.As(err, &d) {
		fmt.Fprintln(w, d.message)
		return
	}
	fmt.Fprintln(w, "Error:", err)
}

func newRecommendCmd(opts *options) *cobra.Command {
	var (
		semester string
		format   string
		style    string
	)
	cmd := &cobra.Command{
		Use:   "recommend [semester]",
		Short: "Print the recommended topics for a semester",
		Example: `  advisor recommend 4
  advisor recommend --semester 6 --format markdown
  advisor recommend 3 --remote --endpoint http://127.0.0.1:5000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				semester = args[0]
			}
			view, err := recommendView(cmd, opts, semester)
			if err != nil {
				return err
			}
			return writeView(cmd.OutOrStdout(), view, format, style)
		},
	}
	cmd.Flags().StringVarP(&semester, "semester", "s", "", "semester number (1 or greater)")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, styled, markdown, pretty or json")
	cmd.Flags().StringVar(&style, "style", "", "glamour style for --format pretty (default: auto)")
	return cmd
}

func recommendView(cmd *cobra.Command, opts *options, semester string) (curriculum.View, error) {
	n, err := curriculum.ParseSemester(semester)
	if err != nil {
		return curriculum.View{}, &displayError{message: curriculum.InvalidSemesterMessage, err: errInvalidSemester}
	}

	if !opts.remote {
		catalog, err := opts.loadCatalog(cmd.Context())
		if err != nil {
			return curriculum.View{}, fmt.Errorf("load catalog: %w", err)
		}
		return curriculum.BuildView(n, curriculum.Select(catalog, n)), nil
	}

	c, err := client.New(opts.endpoint, opts.timeout)
	if err != nil {
		return curriculum.View{}, err
	}
	switch out := c.Recommend(cmd.Context(), semester).(type) {
	case client.Success:
		return out.View(), nil
	case client.Failure:
		if out.Kind == client.FailureServer {
			return curriculum.View{}, &displayError{message: "Erro: " + out.Message, err: fmt.Errorf("%w: %s", errServer, out.Message)}
		}
		return curriculum.View{}, &displayError{message: out.Message, err: fmt.Errorf("%w: %v", errConnection, out.Cause)}
	default:
		return curriculum.View{}, fmt.Errorf("unexpected outcome %T", out)
	}
}

func writeView(w io.Writer, v curriculum.View, format, style string) error {
	switch strings.ToLower(format) {
	case formatText, "":
		_, err := io.WriteString(w, render.Text(v))
		return err
	case formatStyled:
		_, err := fmt.Fprintln(w, render.Styled(v))
		return err
	case formatMarkdown:
		_, err := io.WriteString(w, render.Markdown(v))
		return err
	case formatPretty:
		out, err := render.Glamour(v, style, 80)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	case formatJSON:
		results := make([]curriculum.Recommendation, 0, v.Total)
		for _, g := range v.Groups {
			for _, topic := range g.Topics {
				results = append(results, curriculum.Recommendation{Topic: topic, Tier: g.Tier})
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Semester int                         `json:"semester"`
			Results  []curriculum.Recommendation `json:"results"`
		}{v.Semester, results})
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
