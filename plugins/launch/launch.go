// Package launch holds the runtime launch-artifact structures that volume
// materialization writes into. They are the in-process stand-ins for the
// wire-level task description the launcher ultimately assembles; producing
// that wire format is not this module's concern.
package launch

import (
	"github.com/harborline/stowage/structs"
)

// VolumeRecord is one mount entry of a ContainerSpec. For provider-backed
// volumes HostPath carries the volume name understood by the driver rather
// than a literal host path.
type VolumeRecord struct {
	ContainerPath string
	HostPath      string
	Mode          structs.VolumeMode
}

// DockerSpec is the Docker section of a ContainerSpec.
type DockerSpec struct {
	Image      string
	Privileged bool
	Parameters map[string]string

	// VolumeDriver names the Docker volume driver the daemon resolves
	// provider-backed VolumeRecords with. Docker supports a single driver
	// per container.
	VolumeDriver string
}

// ContainerSpec is the container-level runtime spec under assembly for one
// launch attempt.
type ContainerSpec struct {
	Type    structs.ContainerizerType
	Volumes []VolumeRecord
	Docker  *DockerSpec
}

// CommandSpec is the process-level runtime spec under assembly for one
// launch attempt.
type CommandSpec struct {
	Value string
	Env   map[string]string
}
