package volumes

import (
	"github.com/harborline/stowage/plugins/launch"
	"github.com/harborline/stowage/structs"
	"github.com/mitchellh/copystructure"
)

// BuildContext is one of the two launch-artifact targets a provider may
// update while materializing a volume. Materialization never mutates the
// context it is handed: a change is delivered as a fresh deep copy, no
// change hands the input back untouched. The concrete variants are
// ContainerContext and CommandContext.
type BuildContext interface {
	// Copy returns a deep copy of the context.
	Copy() BuildContext

	buildContext()
}

// ContainerContext wraps the container-level runtime spec under assembly.
type ContainerContext struct {
	Spec *launch.ContainerSpec
}

func (c *ContainerContext) Copy() BuildContext {
	raw, err := copystructure.Copy(c)
	if err != nil {
		panic(err.Error())
	}
	return raw.(*ContainerContext)
}

func (*ContainerContext) buildContext() {}

// CommandContext wraps the process-level runtime spec under assembly,
// together with the containerizer the task will run on.
type CommandContext struct {
	Type    structs.ContainerizerType
	Command *launch.CommandSpec
}

func (c *CommandContext) Copy() BuildContext {
	raw, err := copystructure.Copy(c)
	if err != nil {
		panic(err.Error())
	}
	return raw.(*CommandContext)
}

func (*CommandContext) buildContext() {}
