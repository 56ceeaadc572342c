package units

// FormatCurrency renders a dollar amount with grouped digits. No currency
// symbol is added.
func FormatCurrency(value float64) string {
	return GroupDigits(value)
}
