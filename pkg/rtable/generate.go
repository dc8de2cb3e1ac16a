package rtable

import "fmt"

// Destination prefix used by the generated topologies.
const generatedDest = "192.168.100.0"

// GenerateChain builds a table of n devices r1..rn where each device
// forwards the destination prefix to the next over a dedicated link
// network, and the last device is directly connected to it. Each device
// declares both ends of its links so gateway addresses resolve to the
// adjacent device. Useful for demos and for exercising hop-count
// behavior.
func GenerateChain(n int) Table {
	if n < 1 {
		return nil
	}
	var t Table
	for i := 1; i <= n; i++ {
		device := fmt.Sprintf("r%d", i)
		if i > 1 {
			// inbound link from the previous device
			t = append(t, Record{Device: device, Network: linkNetwork(i - 1), PrefixLen: 24, NextHop: DirectlyConnected})
		}
		if i < n {
			t = append(t,
				Record{Device: device, Network: linkNetwork(i), PrefixLen: 24, NextHop: DirectlyConnected},
				Record{Device: device, Network: generatedDest, PrefixLen: 24, NextHop: linkGateway(i)},
			)
		} else {
			t = append(t, Record{Device: device, Network: generatedDest, PrefixLen: 24, NextHop: DirectlyConnected})
		}
	}
	return t
}

// GenerateLoop builds a ring of n devices where every device forwards
// the destination prefix to the next and the last points back at the
// first, so no trace of the destination ever terminates.
func GenerateLoop(n int) Table {
	if n < 2 {
		return nil
	}
	var t Table
	for i := 1; i <= n; i++ {
		device := fmt.Sprintf("r%d", i)
		inbound := i - 1
		if inbound == 0 {
			inbound = n
		}
		t = append(t,
			Record{Device: device, Network: linkNetwork(inbound), PrefixLen: 24, NextHop: DirectlyConnected},
			Record{Device: device, Network: linkNetwork(i), PrefixLen: 24, NextHop: DirectlyConnected},
			Record{Device: device, Network: generatedDest, PrefixLen: 24, NextHop: linkGateway(i)},
		)
	}
	return t
}

// GeneratedDestination returns an address inside the destination prefix
// shared by the generated topologies, usable as a trace target.
func GeneratedDestination() string {
	return "192.168.100.10"
}

func linkNetwork(i int) string {
	return fmt.Sprintf("10.0.%d.0", i)
}

func linkGateway(i int) string {
	return fmt.Sprintf("10.0.%d.2", i)
}
