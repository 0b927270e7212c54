package dispatch

// Registry holds commands by name, in the order they were first registered.
type Registry struct {
	// Stages applied to every command at registration. DefaultStages are
	// used when nil.
	Stages []Stage

	names    []string
	commands map[string]*Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

// Register wraps c in the registry's stages and stores the result under the
// command's name, which is returned.
//
// If a command is already registered with the same name, it is replaced, but
// keeps its position in Commands.
//
// Register panics if c has no Run function, or if it has no name and its Run
// function is anonymous.
func (r *Registry) Register(c *Cmd) *Command {
	if r.commands == nil {
		r.commands = make(map[string]*Command)
	}
	stages := r.Stages
	if stages == nil {
		stages = DefaultStages
	}

	cmd := newCommand(c, stages)
	if _, ok := r.commands[cmd.Name]; !ok {
		r.names = append(r.names, cmd.Name)
	}
	r.commands[cmd.Name] = cmd
	return cmd
}

// Lookup returns the command registered under exactly name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Commands returns all registered commands in registration order.
func (r *Registry) Commands() []*Command {
	cmds := make([]*Command, 0, len(r.names))
	for _, name := range r.names {
		cmds = append(cmds, r.commands[name])
	}
	return cmds
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.names)
}
