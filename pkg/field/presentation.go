package field

// Style is the visual treatment a renderer applies to the input element.
type Style string

const (
	StyleNone  Style = ""
	StyleError Style = "error"
)

// Presentation is everything a renderer needs to know about a state.
type Presentation struct {
	Style           Style
	ShowExplanation bool
}

// Present maps a state to its presentation. Unknown states render as clean.
func Present(state State) Presentation {
	switch state {
	case StateInvalidShown:
		return Presentation{Style: StyleError, ShowExplanation: true}
	case StateInvalidHidden:
		return Presentation{Style: StyleError}
	default:
		return Presentation{Style: StyleNone}
	}
}
