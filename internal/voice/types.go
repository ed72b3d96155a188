package voice

// Slot names in the inbound intent.
const (
	SlotMediaTitle = "MediaTitle"
	SlotAllSeasons = "all"
)

// RequestEnvelope is the inbound voice-platform request. Only the fields
// the handler needs are modeled; the rest of the envelope passes through
// undecoded.
type RequestEnvelope struct {
	Version string  `json:"version"`
	Session Session `json:"session"`
	Request Request `json:"request"`
}

// Session identifies the caller; used only for logging.
type Session struct {
	SessionID string `json:"sessionId"`
	User      User   `json:"user"`
}

// User is the voice-platform user identity.
type User struct {
	UserID string `json:"userId"`
}

// Request is the intent portion of the envelope.
type Request struct {
	Type   string `json:"type"`
	Intent Intent `json:"intent"`
}

// Intent carries the named slots extracted from spoken input.
type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots"`
}

// Slot is a single named parameter.
type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SlotValue returns the value of a named slot, or "" when absent.
func (i Intent) SlotValue(name string) string {
	return i.Slots[name].Value
}

// ResponseEnvelope is the outbound voice-platform response.
type ResponseEnvelope struct {
	Version  string   `json:"version"`
	Response Response `json:"response"`
}

// Response wraps the spoken output. ShouldEndSession is always true; each
// invocation ends the conversation.
type Response struct {
	OutputSpeech     OutputSpeech `json:"outputSpeech"`
	ShouldEndSession bool         `json:"shouldEndSession"`
}

// OutputSpeech is the plain-text spoken string.
type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewSpeechResponse builds the fixed envelope around a spoken sentence.
func NewSpeechResponse(text string) ResponseEnvelope {
	return ResponseEnvelope{
		Version: "1.0",
		Response: Response{
			OutputSpeech: OutputSpeech{
				Type: "PlainText",
				Text: text,
			},
			ShouldEndSession: true,
		},
	}
}
