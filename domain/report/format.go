package report

import "fmt"

// FormatPValue renders a p-value the way every surface of the engine must:
// scientific notation with two digits below 0.001, otherwise fixed to four
// decimals. Downstream text embeds the formatted string, not the float, so
// this is part of the report contract.
func FormatPValue(p float64) string {
	if p < 0.001 {
		return fmt.Sprintf("%.2e", p)
	}
	return fmt.Sprintf("%.4f", p)
}

// SignificanceLabel returns the conventional star notation for a p-value.
func SignificanceLabel(p float64) string {
	switch {
	case p < 0.001:
		return "***"
	case p < 0.01:
		return "**"
	case p < 0.05:
		return "*"
	default:
		return "ns"
	}
}
