package errorhandler

// A Kind selects how an ErrorHandler renders its response.
type Kind int

const (
	Plain Kind = iota
	HTML
)

func (k Kind) String() string {
	switch k {
	case HTML:
		return "html"
	default:
		return "plain"
	}
}

// ContentType returns the Content-Type header value responses of Kind k carry.
func (k Kind) ContentType() string {
	switch k {
	case HTML:
		return "text/html"
	default:
		return "text/plain"
	}
}
