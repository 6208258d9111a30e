package volumes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/docker/go-units"
	"github.com/hashicorp/go-set/v3"

	"github.com/harborline/stowage/helper/validate"
	"github.com/harborline/stowage/plugins/launch"
	"github.com/harborline/stowage/structs"
	"github.com/harborline/stowage/taskenv"
)

// DVDIProvider backs persistent volumes with an external Docker volume
// driver. Under the Docker containerizer a volume becomes a mount record
// plus the container's volume-driver field; under the native containerizer
// it becomes a pair of environment variables the agent-side isolator reads.
type DVDIProvider struct{}

func (*DVDIProvider) Name() string { return structs.VolumeProviderDVDI }

func (*DVDIProvider) Accepts(v structs.Volume) bool {
	pv, ok := v.(*structs.PersistentVolume)
	return ok && pv.Provider == structs.VolumeProviderDVDI
}

func (p *DVDIProvider) SelectVolumes(c *structs.Container) []structs.Volume {
	return selectVolumes(p, c)
}

var dvdiVolumeRules = validate.And(
	validate.Field(func(v *structs.PersistentVolume) string { return v.Name },
		validate.NotEmpty("name")),
	validate.Field(func(v *structs.PersistentVolume) string { return v.Provider },
		validate.EqualTo("provider", structs.VolumeProviderDVDI)),
	validate.Rule("options", "at least one option is required",
		func(v *structs.PersistentVolume) bool { return len(v.Options) > 0 }),
	validate.When(
		func(v *structs.PersistentVolume) bool { return len(v.Options) > 0 },
		validate.Field(func(v *structs.PersistentVolume) string { return v.Options[structs.DVDIDriverOption] },
			validate.NotEmpty("options["+structs.DVDIDriverOption+"]")),
	),
	validate.Rule("options["+structs.DVDISizeOption+"]", "must be a parseable size",
		func(v *structs.PersistentVolume) bool {
			s, ok := v.Options[structs.DVDISizeOption]
			if !ok {
				return true
			}
			_, err := units.RAMInBytes(s)
			return err == nil
		}),
)

func (*DVDIProvider) ValidateVolume(v structs.Volume) structs.ValidationResult {
	pv, ok := v.(*structs.PersistentVolume)
	if !ok {
		return structs.Success()
	}
	return dvdiVolumeRules(pv)
}

// ValidateContainer enforces the Docker daemon's one-volume-driver-per-
// container limit: every dvdi volume on a Docker container must name the
// same driver. The native containerizer mounts per volume and has no such
// limit.
func (p *DVDIProvider) ValidateContainer(c *structs.Container) structs.ValidationResult {
	if c == nil || c.Type != structs.ContainerizerDocker {
		return structs.Success()
	}

	drivers := set.New[string](1)
	for _, v := range p.SelectVolumes(c) {
		pv := v.(*structs.PersistentVolume)
		drivers.Insert(pv.Options[structs.DVDIDriverOption])
	}

	if drivers.Size() > 1 {
		names := drivers.Slice()
		sort.Strings(names)
		return structs.Failure(structs.RuleViolation("volumes",
			fmt.Sprintf("Docker containers may use only a single dvdi volume driver, found %s",
				strings.Join(names, ", "))))
	}
	return structs.Success()
}

// ValidateGroup enforces cluster-wide uniqueness of dvdi volumes across the
// deployment group; see checkGroupConflicts.
func (p *DVDIProvider) ValidateGroup(g *structs.Group) structs.ValidationResult {
	return checkGroupConflicts(p, g)
}

// Materialize applies exactly one of the two containerizer paths: a Docker
// container context gains a volume record and its volume-driver field, a
// native command context gains the indexed volume environment variables.
// Every other combination is no change.
func (*DVDIProvider) Materialize(ctx BuildContext, v structs.Volume) (BuildContext, bool) {
	pv, ok := v.(*structs.PersistentVolume)
	if !ok {
		return ctx, false
	}

	switch c := ctx.(type) {
	case *ContainerContext:
		if c.Spec == nil || c.Spec.Type != structs.ContainerizerDocker || c.Spec.Docker == nil {
			return ctx, false
		}

		driver := pv.Options[structs.DVDIDriverOption]
		next := c.Copy().(*ContainerContext)
		next.Spec.Volumes = append(next.Spec.Volumes, launch.VolumeRecord{
			ContainerPath: pv.ContainerPath,
			HostPath:      pv.Name,
			Mode:          pv.Mode,
		})
		if next.Spec.Docker.VolumeDriver != driver {
			next.Spec.Docker.VolumeDriver = driver
		}
		return next, true

	case *CommandContext:
		if c.Type != structs.ContainerizerMesos || c.Command == nil {
			return ctx, false
		}

		next := c.Copy().(*CommandContext)
		if next.Command.Env == nil {
			next.Command.Env = make(map[string]string)
		}
		taskenv.SetVolumeVars(next.Command.Env, pv.Name, pv.Options[structs.DVDIDriverOption])
		return next, true
	}

	return ctx, false
}
