package structs

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/go-viper/mapstructure/v2"
	"github.com/harborline/stowage/helper/pointer"
	"github.com/mitchellh/copystructure"
)

const (
	// VolumeProviderDVDI backs persistent volumes with an external Docker
	// volume driver (rexray, flocker, ...).
	VolumeProviderDVDI = "dvdi"

	// VolumeProviderAgent backs persistent volumes with storage local to the
	// agent that runs the task. Persistent volumes that name no provider
	// default to it.
	VolumeProviderAgent = "agent"
)

const (
	// DVDIDriverOption is the option-bag key naming the Docker volume driver.
	DVDIDriverOption = "dvdi/driverName"

	// DVDISizeOption is the optional option-bag key carrying a size hint for
	// the driver, e.g. "512m" or "16g".
	DVDISizeOption = "dvdi/size"
)

// VolumeMode controls whether a task can write to a volume.
type VolumeMode string

const (
	VolumeModeRO VolumeMode = "RO"
	VolumeModeRW VolumeMode = "RW"
)

// Volume is a single volume declaration on a Container. The concrete variants
// are PersistentVolume and HostVolume; nothing else implements it.
type Volume interface {
	// TargetPath is the mount path inside the container.
	TargetPath() string

	// AccessMode is the declared read/write mode.
	AccessMode() VolumeMode

	Copy() Volume
}

// PersistentVolume is a provider-backed volume. Which provider owns it is
// decided by Provider; the empty string defaults to agent-local storage.
type PersistentVolume struct {
	ContainerPath string
	Mode          VolumeMode

	Provider string
	Name     string

	// SizeMiB is the requested size. Required for agent-local volumes,
	// ignored by the dvdi provider which sizes through the option bag.
	SizeMiB *int64

	// Options are provider-specific settings passed through verbatim.
	Options map[string]string
}

func (v *PersistentVolume) TargetPath() string     { return v.ContainerPath }
func (v *PersistentVolume) AccessMode() VolumeMode { return v.Mode }

func (v *PersistentVolume) Copy() Volume {
	if v == nil {
		return nil
	}

	nv := new(PersistentVolume)
	*nv = *v
	nv.SizeMiB = pointer.Copy(v.SizeMiB)

	if i, err := copystructure.Copy(v.Options); err != nil {
		panic(err.Error())
	} else {
		nv.Options = i.(map[string]string)
	}

	return nv
}

func (v *PersistentVolume) String() string {
	s := fmt.Sprintf("persistent volume %q at %s", v.Name, v.ContainerPath)
	if v.SizeMiB != nil {
		s += fmt.Sprintf(" (%s)", humanize.IBytes(uint64(*v.SizeMiB)*humanize.MiByte))
	}
	return s
}

// HostVolume bind-mounts a path on the host into the container.
type HostVolume struct {
	ContainerPath string
	Mode          VolumeMode

	HostPath string
}

func (v *HostVolume) TargetPath() string     { return v.ContainerPath }
func (v *HostVolume) AccessMode() VolumeMode { return v.Mode }

func (v *HostVolume) Copy() Volume {
	if v == nil {
		return nil
	}
	nv := new(HostVolume)
	*nv = *v
	return nv
}

func (v *HostVolume) String() string {
	return fmt.Sprintf("host volume %s at %s", v.HostPath, v.ContainerPath)
}

// DVDIConfig is the typed view of the `dvdi/*` entries of a persistent
// volume's option bag.
type DVDIConfig struct {
	DriverName string `mapstructure:"dvdi/driverName"`
	Size       string `mapstructure:"dvdi/size"`
}

// ParseDVDIConfig decodes a persistent volume's option bag.
func ParseDVDIConfig(m map[string]string) (*DVDIConfig, error) {
	var c DVDIConfig
	err := mapstructure.Decode(m, &c)

	return &c, err
}
