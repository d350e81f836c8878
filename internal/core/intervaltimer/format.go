package intervaltimer

import "fmt"

// FormatRemaining renders seconds as mm:ss. Negative input renders as 00:00.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
