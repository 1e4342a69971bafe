// Package capgains implements a cost-basis accounting engine for security
// trades.
//
// The engine consumes a chronological stream of buy, sell and dividend
// events, matches every sell against the open acquisition lots of the same
// security using the FIFO method, and aggregates realized profit and
// dividend income per fiscal year (July to June, labeled by the ending
// calendar year).
//
// The [Ledger] holds the raw trade events, typically persisted as a JSONL
// file. The [Journal] replays a ledger and produces the immutable audit
// trail of consolidated entries, the open lot inventory, and the
// fiscal-year profit totals.
package capgains
