// Package analytics computes the descriptive summary tables of the order
// analytics pipeline: category popularity, geographic distribution,
// rating extremes, and RFM customer segmentation.
//
// Every function is a pure transformation of its input dataset: nothing
// is cached, the input is never mutated, and each call allocates a fresh
// result table. Aggregations that count orders, customers, sellers, or
// products always count distinct identifiers, never rows.
package analytics

// distinctCounter counts distinct member ids per group key. Empty group
// keys and empty member ids are ignored; groups with no members are never
// materialized.
type distinctCounter map[string]map[string]struct{}

func (c distinctCounter) add(group, member string) {
	if group == "" || member == "" {
		return
	}
	members, ok := c[group]
	if !ok {
		members = make(map[string]struct{})
		c[group] = members
	}
	members[member] = struct{}{}
}
