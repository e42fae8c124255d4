package organize

import "github.com/ltejedor/aihacks/core"

// contextWindow returns up to size messages before and after index i in the
// sorted sequence, including the focal message itself. The window is clamped
// at the boundaries.
func contextWindow(messages []core.Message, i, size int) []core.Message {
	start := i - size
	if start < 0 {
		start = 0
	}
	end := i + size + 1
	if end > len(messages) {
		end = len(messages)
	}
	return messages[start:end]
}
