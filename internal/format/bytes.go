package format

import "fmt"

// FormatBytes renders a byte count using binary units (KiB, MiB, GiB) with
// one decimal of precision above the KiB boundary.
//
// Parameters:
//   - n: The byte count.
//
// Returns:
//   - string: A human-readable size string.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
