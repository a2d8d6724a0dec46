// Package generator turns a schema into rows of synthetic data.
//
// Generation is a pure function of the schema, the row count and the
// randomness Source:
//
//	rows := generator.Generate(schema.DefaultSchema(), 10)
//
// Each field type maps to one rule (names, emails, phone numbers, dates in a
// window, amounts in bounds, enum picks, ...). Types without a rule and
// enums without values produce nil. Generation never fails.
//
// # Correlation
//
// After a row is complete, an email is derived from a name so the two look
// related: "Ada Lovelace" becomes "ada.lovelace@<domain>". By default this
// only happens for the literal keys "name" and "email"; WithCorrelation
// switches to matching by field type or turns it off.
//
// # Determinism
//
// The default engine draws from math/rand/v2 and crypto/rand. Tests pass
// WithSeed (or WithSource) together with WithNow to get reproducible output:
//
//	eng := generator.New(generator.WithSeed(42), generator.WithNow(fixedClock))
//	rows := eng.Generate(s, 100)
//
// An Engine is safe for concurrent use when its Source is; both built-in
// sources are.
package generator
