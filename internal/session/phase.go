package session

// Phase is the lifecycle position of the submission cycle.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseSending Phase = "sending"
)

// Outcome records how the most recent submission settled.
type Outcome string

const (
	OutcomeNone     Outcome = ""
	OutcomeResolved Outcome = "resolved"
	// OutcomeEmpty is a soft failure: the generator answered without text.
	OutcomeEmpty  Outcome = "empty"
	OutcomeFailed Outcome = "failed"
)

// Failed reports whether the outcome replaced the result with a fallback.
func (o Outcome) Failed() bool {
	return o == OutcomeEmpty || o == OutcomeFailed
}

// User-visible strings. Callers may match against them.
const (
	PendingText       = "Gerando documentação..."
	FallbackFailure   = "Erro ao gerar documentação. Por favor, tente novamente."
	FallbackNoContent = "Não foi possível gerar documentação."
)
