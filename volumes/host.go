package volumes

import (
	"github.com/harborline/stowage/plugins/launch"
	"github.com/harborline/stowage/structs"
)

// HostVolumeProvider handles direct host-path bind mounts. There is nothing
// to restrict: any host volume is acceptable and materializes to a mount
// record under every containerizer.
type HostVolumeProvider struct{}

func (*HostVolumeProvider) Name() string { return "host" }

func (*HostVolumeProvider) Accepts(v structs.Volume) bool {
	_, ok := v.(*structs.HostVolume)
	return ok
}

func (p *HostVolumeProvider) SelectVolumes(c *structs.Container) []structs.Volume {
	return selectVolumes(p, c)
}

func (*HostVolumeProvider) ValidateVolume(structs.Volume) structs.ValidationResult {
	return structs.Success()
}

func (*HostVolumeProvider) ValidateContainer(*structs.Container) structs.ValidationResult {
	return structs.Success()
}

func (*HostVolumeProvider) ValidateGroup(*structs.Group) structs.ValidationResult {
	return structs.Success()
}

func (*HostVolumeProvider) Materialize(ctx BuildContext, v structs.Volume) (BuildContext, bool) {
	hv, ok := v.(*structs.HostVolume)
	if !ok {
		return ctx, false
	}

	c, ok := ctx.(*ContainerContext)
	if !ok || c.Spec == nil {
		return ctx, false
	}

	next := c.Copy().(*ContainerContext)
	next.Spec.Volumes = append(next.Spec.Volumes, launch.VolumeRecord{
		ContainerPath: hv.ContainerPath,
		HostPath:      hv.HostPath,
		Mode:          hv.Mode,
	})
	return next, true
}
