// Package tui is the terminal version of the semester form: type a semester,
// press enter, and the grouped recommendations replace the previous result.
//
// Local mode selects in-process. Remote mode posts to the API from a tea.Cmd,
// shows a spinner meanwhile, and drops any response that is not for the latest
// submission.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"curriculum-backend/internal/client"
	"curriculum-backend/internal/curriculum"
	"curriculum-backend/internal/render"
)

type formState int

const (
	stateIdle formState = iota
	stateLoading
	stateResult
	stateError
)

// resultMsg delivers a remote outcome back to Update.
type resultMsg struct {
	result client.Result
}

// Option customizes a Form.
type Option func(*Form)

// WithRemote makes the form ask r instead of selecting locally.
func WithRemote(r client.Recommender, timeout time.Duration) Option {
	return func(f *Form) {
		f.remote = r
		f.timeout = timeout
	}
}

// Form is the bubbletea model for the semester form.
type Form struct {
	catalog curriculum.Catalog
	remote  client.Recommender
	timeout time.Duration
	session *client.Session

	input   textinput.Model
	spinner spinner.Model

	state   formState
	errText string
	view    curriculum.View
	width   int
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0058d1"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff3b30"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// NewForm builds a form that selects from catalog unless WithRemote is given.
func NewForm(catalog curriculum.Catalog, opts ...Option) *Form {
	in := textinput.New()
	in.Placeholder = "ex.: 4"
	in.Prompt = "Semestre: "
	in.CharLimit = 6
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	f := &Form{
		catalog: catalog,
		session: &client.Session{},
		input:   in,
		spinner: sp,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
		return f, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return f, tea.Quit
		case tea.KeyEnter:
			return f, f.submit()
		}
	case resultMsg:
		f.apply(msg.result)
		return f, nil
	case spinner.TickMsg:
		if f.state != stateLoading {
			return f, nil
		}
		var cmd tea.Cmd
		f.spinner, cmd = f.spinner.Update(msg)
		return f, cmd
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// submit validates the input and either renders locally or starts a remote request.
func (f *Form) submit() tea.Cmd {
	raw := f.input.Value()
	semester, err := curriculum.ParseSemester(raw)
	if err != nil {
		f.state = stateError
		f.errText = curriculum.InvalidSemesterMessage
		return nil
	}
	if f.remote == nil {
		f.showView(curriculum.BuildView(semester, curriculum.Select(f.catalog, semester)))
		return nil
	}

	ticket := f.session.Begin()
	f.state = stateLoading
	f.errText = ""
	remote, timeout := f.remote, f.timeout
	request := func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return resultMsg{result: client.Result{Ticket: ticket, Outcome: remote.Recommend(ctx, raw)}}
	}
	return tea.Batch(request, f.spinner.Tick)
}

func (f *Form) apply(res client.Result) {
	if !f.session.Current(res.Ticket) {
		return
	}
	switch out := res.Outcome.(type) {
	case client.Success:
		f.showView(out.View())
	case client.Failure:
		f.state = stateError
		if out.Kind == client.FailureServer {
			f.errText = "Erro: " + out.Message
		} else {
			f.errText = out.Message
		}
	}
}

func (f *Form) showView(v curriculum.View) {
	f.state = stateResult
	f.errText = ""
	f.view = v
}

func (f *Form) View() string {
	blocks := []string{
		headerStyle.Render("Recomendação de Conteúdos"),
		f.input.View(),
	}
	switch f.state {
	case stateLoading:
		blocks = append(blocks, f.spinner.View()+" Consultando recomendações...")
	case stateError:
		blocks = append(blocks, errorStyle.Render(f.errText))
	case stateResult:
		blocks = append(blocks, render.Styled(f.view))
	}
	blocks = append(blocks, hintStyle.Render("enter: recomendar · esc: sair"))
	return lipgloss.JoinVertical(lipgloss.Left, blocks...) + "\n"
}

// Run starts the form on the terminal and blocks until the user quits.
func Run(f *Form) error {
	_, err := tea.NewProgram(f).Run()
	return err
}
