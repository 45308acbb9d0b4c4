// Package field implements the validation state machines behind the numeric
// and email-like text inputs. A host forwards edit, focus and blur signals and
// queries Value and State to decide what to draw; Present turns a State into
// the style and explanation flags every renderer shares.
package field
