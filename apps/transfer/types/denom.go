package types

import "strings"

// Trace is one port/channel hop a denomination has been sent over.
type Trace struct {
	PortID    string
	ChannelID string
}

// PrefixedDenom is `[(port/channel/)*] base_denom`: a base denomination
// together with the ordered sequence of port/channel hops it was relayed
// through. A denom straight off its source chain has no trace at all.
type PrefixedDenom struct {
	Trace     []Trace
	BaseDenom string
}

// ParsePrefixedDenom splits a wire denom into its trace and base denom by
// repeatedly peeling `port/channel/` pairs off the front for as long as
// what remains still contains a '/'. `transfer/channel-0/transfer/channel-7/stake`
// yields two hops and base denom "stake"; a denom with no such pairs (or
// where peeling would leave nothing) is returned with an empty trace.
func ParsePrefixedDenom(denom string) PrefixedDenom {
	parts := strings.Split(denom, "/")
	var trace []Trace
	for len(parts) >= 3 {
		trace = append(trace, Trace{PortID: parts[0], ChannelID: parts[1]})
		parts = parts[2:]
	}
	return PrefixedDenom{Trace: trace, BaseDenom: strings.Join(parts, "/")}
}

// String reconstructs the wire denom ParsePrefixedDenom would split back
// into the same trace and base denom.
func (d PrefixedDenom) String() string {
	var b strings.Builder
	for _, hop := range d.Trace {
		b.WriteString(hop.PortID)
		b.WriteByte('/')
		b.WriteString(hop.ChannelID)
		b.WriteByte('/')
	}
	b.WriteString(d.BaseDenom)
	return b.String()
}

// HasPrefix reports whether the given port/channel tuple was the chain that
// most recently forwarded this denom, i.e. it is the leading hop of the
// trace: the check that decides whether a hop is added or removed.
func (d PrefixedDenom) HasPrefix(portID, channelID string) bool {
	return len(d.Trace) > 0 && d.Trace[0].PortID == portID && d.Trace[0].ChannelID == channelID
}

// AddPrefix prepends a port/channel hop, the step a receiving chain takes
// when it is not the source of the token: the new leading hop identifies
// the channel the token just arrived on.
func (d PrefixedDenom) AddPrefix(portID, channelID string) PrefixedDenom {
	trace := make([]Trace, 0, len(d.Trace)+1)
	trace = append(trace, Trace{PortID: portID, ChannelID: channelID})
	trace = append(trace, d.Trace...)
	return PrefixedDenom{Trace: trace, BaseDenom: d.BaseDenom}
}

// RemovePrefix strips the leading port/channel hop, the step a chain takes
// when a token it originally sent out is returned to it: the matching hop
// that was prepended on the way out is stripped on the way back.
func (d PrefixedDenom) RemovePrefix() PrefixedDenom {
	if len(d.Trace) == 0 {
		return d
	}
	trace := make([]Trace, len(d.Trace)-1)
	copy(trace, d.Trace[1:])
	return PrefixedDenom{Trace: trace, BaseDenom: d.BaseDenom}
}
