package menuimage

import "fmt"

const (
	kilobyte = 1024
	megabyte = 1024 * 1024
)

// FormatByteSize renders a byte count as B, KB or MB with one decimal for KB and MB
func FormatByteSize(bytes int64) string {
	switch {
	case bytes == 0:
		return "0 B"
	case bytes < kilobyte:
		return fmt.Sprintf("%d B", bytes)
	case bytes < megabyte:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kilobyte)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/megabyte)
	}
}
