package client

import "curriculum-backend/internal/curriculum"

// ConnectionErrorMessage is what users see for any transport or decoding failure.
const ConnectionErrorMessage = "Erro ao conectar com o servidor."

// Outcome is the result of one remote call: either Success or Failure.
type Outcome interface {
	outcome()
}

// Success carries the recommendations the server returned.
type Success struct {
	Semester        int
	Recommendations []curriculum.Recommendation
}

// FailureKind distinguishes server-reported errors from connection problems.
type FailureKind int

const (
	// FailureServer means the server answered with an error payload.
	FailureServer FailureKind = iota + 1
	// FailureConnection covers network errors and unusable responses.
	FailureConnection
)

func (k FailureKind) String() string {
	switch k {
	case FailureServer:
		return "server"
	case FailureConnection:
		return "connection"
	default:
		return "unknown"
	}
}

// Failure carries the message to show the user. Cause is set for connection failures.
type Failure struct {
	Kind    FailureKind
	Message string
	Cause   error
}

func (Success) outcome() {}
func (Failure) outcome() {}

// View groups a Success for rendering. Unknown tiers in the payload are skipped.
func (s Success) View() curriculum.View {
	return curriculum.BuildView(s.Semester, s.Recommendations)
}
