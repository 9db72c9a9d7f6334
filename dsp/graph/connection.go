package graph

// Connection is a directed edge between two named stages. Parameter
// names the destination's modulated parameter for control edges and is
// empty for plain audio routing. Disabled connections still count as
// structure: they participate in cycle detection and ordering.
type Connection struct {
	Source      string
	Destination string
	Parameter   string
	Amount      float64
	Enabled     bool
}

// NewConnection returns an enabled audio connection with unity amount.
func NewConnection(source, destination string) Connection {
	return Connection{
		Source:      source,
		Destination: destination,
		Amount:      1,
		Enabled:     true,
	}
}
