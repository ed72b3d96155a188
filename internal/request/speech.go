package request

import "fmt"

// Formatter maps a pipeline Outcome to a single spoken sentence.
type Formatter struct {
	// VerboseErrors includes the upstream response text in the transport
	// error sentence. Off by default so internal details never reach the
	// speaker unless the operator opts in.
	VerboseErrors bool
}

// EmptyQuery is the prompt for a missing or empty title slot.
func (f Formatter) EmptyQuery() string {
	return "Please provide the title of the movie or TV show."
}

// Speak returns the spoken sentence for an outcome.
func (f Formatter) Speak(o Outcome) string {
	switch o.Kind {
	case OutcomeNotFound:
		return fmt.Sprintf("I'm sorry, but I couldn't find any media matching '%s'.", o.Title)

	case OutcomeSubmitted:
		switch o.Scope {
		case ScopeAllSeasons:
			return fmt.Sprintf("I have successfully added all seasons of '%s' to your requests.", o.Title)
		case ScopeLatestSeason:
			return fmt.Sprintf("I have successfully added the latest season of '%s' to your requests.", o.Title)
		default:
			return fmt.Sprintf("I have successfully added '%s' to your requests.", o.Title)
		}

	case OutcomeRejected:
		return "I couldn't add your request. Please check the details and try again."

	default:
		if f.VerboseErrors && o.UpstreamBody != "" {
			return fmt.Sprintf("An error occurred while processing your request: %s", o.UpstreamBody)
		}
		return "An error occurred while processing your request. Please try again later."
	}
}
