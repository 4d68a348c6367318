package session

// DefaultScrollThreshold is the distance from the bottom, in display units,
// beyond which the view stops following new messages.
const DefaultScrollThreshold = 100

// NearBottom reports whether a view positioned as ev is within threshold
// units of the end of its content.
func NearBottom(ev Scrolled, threshold int) bool {
	return ev.ContentHeight-ev.Offset-ev.ViewHeight < threshold
}
