// Package units formata grandezas para exibição nos relatórios.
package units

import (
	"fmt"
	"math"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// HumanizeBytes renders a byte count with binary scaling and two decimals,
// e.g. 1536 -> "1.50 KB". Zero, negative and NaN inputs render as "0 B";
// values beyond the TB range stay in TB.
func HumanizeBytes(size float64) string {
	if size <= 0 || math.IsNaN(size) {
		return "0 B"
	}

	i := 0
	for size >= 1024 && i < len(byteUnits)-1 {
		size /= 1024
		i++
	}
	return fmt.Sprintf("%.2f %s", size, byteUnits[i])
}
