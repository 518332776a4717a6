package speech

// FailureKind tags the terminal class of a transcription attempt. It drives
// which fallback message, if any, goes back to the user.
type FailureKind int

const (
	FailureNone FailureKind = iota
	// FailureNoSpeech is a legitimate empty result, not an error.
	FailureNoSpeech
	FailureServiceUnavailable
	FailureDownload
	FailureTranscode
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureNoSpeech:
		return "no_speech"
	case FailureServiceUnavailable:
		return "service_unavailable"
	case FailureDownload:
		return "download_failed"
	case FailureTranscode:
		return "transcode_failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one recognition attempt: either text or exactly
// one failure kind.
type Result struct {
	Text    string
	Failure FailureKind
}

func OK(text string) Result {
	return Result{Text: text}
}

func Failed(kind FailureKind) Result {
	return Result{Failure: kind}
}

func (r Result) IsOK() bool {
	return r.Failure == FailureNone
}
