package store

import "strconv"

// Table base names within a namespace.
const (
	baseTrades   = "trades"
	basePrices   = "prices"
	baseStatus   = "status"
	baseEvents   = "events"
	baseUIEvents = "uiEvents"
)

// Tables resolves fully qualified table names for one namespace and
// environment. The live flag selects the live table set over the
// dev-suffixed one and is fixed at construction.
type Tables struct {
	namespace string
	live      bool
}

func NewTables(namespace string, live bool) Tables {
	return Tables{namespace: namespace, live: live}
}

func (t Tables) name(base string) string {
	if t.live {
		return t.namespace + ".live." + base
	}
	return t.namespace + "." + base + ".dev"
}

func (t Tables) Trades() string { return t.name(baseTrades) }

// Prices returns the table for one aggregation period; each period has
// its own table.
func (t Tables) Prices(period int) string {
	return t.name(basePrices + "." + strconv.Itoa(period))
}

func (t Tables) Status() string   { return t.name(baseStatus) }
func (t Tables) Events() string   { return t.name(baseEvents) }
func (t Tables) UIEvents() string { return t.name(baseUIEvents) }
