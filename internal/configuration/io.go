package configuration

// IoConfig describes how a single hardware signal is accessed.
// Exactly one of the sub-configurations must be set.
type IoConfig struct {
	File    *FileIoConfig    `json:"file,omitempty" yaml:"file,omitempty"`
	Cmd     *CmdIoConfig     `json:"cmd,omitempty" yaml:"cmd,omitempty"`
	Virtual *VirtualIoConfig `json:"virtual,omitempty" yaml:"virtual,omitempty"`
}

type FileIoConfig struct {
	Path string `json:"path" yaml:"path"`
	// Atomic replaces the file on write instead of writing in place,
	// only meaningful for outputs backed by regular files
	Atomic bool `json:"atomic,omitempty" yaml:"atomic,omitempty"`
}

type CmdIoConfig struct {
	Exec string   `json:"exec" yaml:"exec"`
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`
}

// VirtualIoConfig simulates a signal in memory, Value is the initial
// raw sample (analog inputs) or pulse width in microseconds (pulse inputs).
type VirtualIoConfig struct {
	Value int `json:"value" yaml:"value"`
}

func (c IoConfig) subConfigCount() int {
	count := 0
	if c.File != nil {
		count++
	}
	if c.Cmd != nil {
		count++
	}
	if c.Virtual != nil {
		count++
	}
	return count
}
