package flow

// Property is a configured processor property
type Property struct {
	Name      string `yaml:"name"`
	Value     string `yaml:"value,omitempty"`
	Sensitive bool   `yaml:"sensitive,omitempty"`
}

// Processor performs work on the data moving through a flow
type Processor struct {
	Base `yaml:",inline"`

	Type               string         `yaml:"type"`
	Bundle             string         `yaml:"bundle,omitempty"`
	Properties         []Property     `yaml:"properties,omitempty"`
	Relationships      []string       `yaml:"relationships,omitempty"`
	State              ScheduledState `yaml:"state,omitempty"`
	SchedulingStrategy string         `yaml:"schedulingStrategy,omitempty"`
	ExecutionNode      string         `yaml:"executionNode,omitempty"`
}

func (p *Processor) Kind() Kind                     { return KindProcessor }
func (p *Processor) ScheduledState() ScheduledState { return p.State }

// Connection links a source component to a destination component
type Connection struct {
	Base `yaml:",inline"`

	SourceID                      string   `yaml:"source"`
	DestinationID                 string   `yaml:"destination"`
	Relationships                 []string `yaml:"relationships,omitempty"`
	FlowFileExpiration            string   `yaml:"flowFileExpiration,omitempty"`
	BackPressureObjectThreshold   string   `yaml:"backPressureObjectThreshold,omitempty"`
	BackPressureDataSizeThreshold string   `yaml:"backPressureDataSizeThreshold,omitempty"`
	Prioritizers                  []string `yaml:"prioritizers,omitempty"`

	source      Component
	destination Component
}

// NewConnection creates a connection between two resolved components
func NewConnection(base Base, source, destination Component) *Connection {
	c := &Connection{Base: base}
	c.connect(source, destination)
	return c
}

func (c *Connection) connect(source, destination Component) {
	c.source = source
	c.destination = destination
	if source != nil {
		c.SourceID = source.ID()
	}
	if destination != nil {
		c.DestinationID = destination.ID()
	}
}

func (c *Connection) Kind() Kind { return KindConnection }

// Source returns the upstream component
func (c *Connection) Source() Component { return c.source }

// Destination returns the downstream component
func (c *Connection) Destination() Component { return c.destination }

// Port moves data into or out of a process group
type Port struct {
	Base `yaml:",inline"`

	State ScheduledState `yaml:"state,omitempty"`
}

func (p *Port) ScheduledState() ScheduledState { return p.State }

// InputPort receives data from outside its group
type InputPort struct {
	Port `yaml:",inline"`
}

func (p *InputPort) Kind() Kind { return KindInputPort }

// OutputPort sends data outside its group
type OutputPort struct {
	Port `yaml:",inline"`
}

func (p *OutputPort) Kind() Kind { return KindOutputPort }

// Funnel merges several connections into one
type Funnel struct {
	Base `yaml:",inline"`
}

func (f *Funnel) Kind() Kind { return KindFunnel }

// Label is a free-text annotation on the canvas
type Label struct {
	Base `yaml:",inline"`

	Value string `yaml:"value,omitempty"`
}

func (l *Label) Kind() Kind { return KindLabel }

// RemoteProcessGroup references a flow on another instance
type RemoteProcessGroup struct {
	Base `yaml:",inline"`

	TargetURIs        string `yaml:"targetUris,omitempty"`
	TransportProtocol string `yaml:"transportProtocol,omitempty"`
}

func (r *RemoteProcessGroup) Kind() Kind { return KindRemoteProcessGroup }

// ProcessGroup is a container of components
type ProcessGroup struct {
	Base `yaml:",inline"`

	ParameterContext string `yaml:"parameterContext,omitempty"`

	Processors          []*Processor          `yaml:"processors,omitempty"`
	Connections         []*Connection         `yaml:"connections,omitempty"`
	InputPorts          []*InputPort          `yaml:"inputPorts,omitempty"`
	OutputPorts         []*OutputPort         `yaml:"outputPorts,omitempty"`
	Funnels             []*Funnel             `yaml:"funnels,omitempty"`
	Labels              []*Label              `yaml:"labels,omitempty"`
	RemoteProcessGroups []*RemoteProcessGroup `yaml:"remoteProcessGroups,omitempty"`
	ProcessGroups       []*ProcessGroup       `yaml:"processGroups,omitempty"`
}

func (g *ProcessGroup) Kind() Kind { return KindProcessGroup }

// children returns the group's direct children in walk order
func (g *ProcessGroup) children() []Component {
	out := make([]Component, 0,
		len(g.Processors)+len(g.Connections)+len(g.InputPorts)+len(g.OutputPorts)+
			len(g.Funnels)+len(g.Labels)+len(g.RemoteProcessGroups))
	for _, p := range g.Processors {
		out = append(out, p)
	}
	for _, c := range g.Connections {
		out = append(out, c)
	}
	for _, p := range g.InputPorts {
		out = append(out, p)
	}
	for _, p := range g.OutputPorts {
		out = append(out, p)
	}
	for _, f := range g.Funnels {
		out = append(out, f)
	}
	for _, l := range g.Labels {
		out = append(out, l)
	}
	for _, r := range g.RemoteProcessGroups {
		out = append(out, r)
	}
	return out
}
