package humanize

// Request is the input to a humanization. Tone and Length only affect the
// legacy mock strategy; Readability, Purpose and Strength are forwarded to
// the live provider with defaults applied.
type Request struct {
	Text        string `json:"text"`
	Tone        string `json:"tone,omitempty"`
	Length      string `json:"length,omitempty"`
	Readability string `json:"readability,omitempty"`
	Purpose     string `json:"purpose,omitempty"`
	Strength    string `json:"strength,omitempty"`
}

// Response is the uniform outcome of a humanization. Output and CreditsUsed
// are set iff Success; Error is set iff not. Err holds the underlying typed
// error for transport-layer status mapping and is never serialized.
type Response struct {
	Success     bool   `json:"success"`
	Output      string `json:"output,omitempty"`
	Error       string `json:"error,omitempty"`
	CreditsUsed int    `json:"creditsUsed,omitempty"`
	Err         error  `json:"-"`
}

func failure(err error) Response {
	return Response{Success: false, Error: err.Error(), Err: err}
}
