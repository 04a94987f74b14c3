// Package query filters consolidated inventory tables.
//
// Filters are simple column predicates written on the command line:
//
//	product=Widget                   equals
//	product!=Widget                  not equals
//	name~wid                         contains, case-insensitive
//	quantity>=10                     ordering: <, <=, >, >=
//	received=2024-01-01..2024-03-31  inclusive range, either end optional
//
// # Typed Comparison
//
// Cells are stored as text. When a cell and an operand both parse as
// numbers they are compared as numbers, so "10" = "10.0" and "9" < "10".
// When both parse as dates (see table.DefaultDateLayouts) they are compared
// chronologically. Everything else is compared as text, case-sensitively
// unless Options.IgnoreCase is set. Empty cells never satisfy an ordering or
// range filter, and neither does a cell such as "N/A" when the bound is a
// number or date.
//
// # Usage
//
//	filters, err := query.ParseFilters([]string{"category=tools", "quantity>0"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	matches, err := query.Apply(t, filters, query.Options{})
//	if errors.Is(err, query.ErrUnknownColumn) {
//	    // a filter names a column the table does not have
//	}
//
// Multiple filters are combined with AND. The result keeps the original row
// order and schema.
package query
