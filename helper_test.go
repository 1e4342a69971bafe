package capgains

// AUD is a helper for test to create australian dollar money from const
func AUD(v float64) Money { return M(v, "AUD") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// day is a helper for test to create a date from its ISO-8601 form.
func day(s string) Date { return MustParse(s) }
